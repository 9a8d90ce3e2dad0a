// Package project loads package metadata for the project relkit builds and
// releases: the manifest (relkit.cue or pyproject.toml), the version-bearing
// initialization module, and the README and history documents.
package project

// Manifest file names, in order of preference.
const (
	CUEManifest       = "relkit.cue"
	PyprojectManifest = "pyproject.toml"
)

// Source identifies which manifest format metadata was loaded from.
type Source string

const (
	SourceCUE       Source = "cue"
	SourcePyproject Source = "pyproject"
)

// Packages controls package discovery.
type Packages struct {
	// Include holds dotted-name glob patterns, e.g. "labelImg.*".
	Include []string `json:"include"`
	// Extra names are appended after discovery.
	Extra []string `json:"extra"`
}

// EntryPoints lists generated launcher scripts.
type EntryPoints struct {
	// ConsoleScripts entries have the form "name=module:function".
	ConsoleScripts []string `json:"consoleScripts"`
}

// Resources configures the Qt resource compiler step.
type Resources struct {
	// QRC is the resource-definition file, relative to the project root.
	QRC string `json:"qrc"`
	// Output is the generated module name written into each target.
	Output string `json:"output"`
	// Targets are directories, relative to the project root, that receive a
	// copy of the generated module.
	Targets []string `json:"targets"`
}

// App configures platform application bundling.
type App struct {
	// Script is the entry script; empty means "<name>.py".
	Script        string `json:"script"`
	ArgvEmulation bool   `json:"argvEmulation"`
	IconFile      string `json:"iconFile"`
}

// Manifest is the declarative part of the project description, as written
// in relkit.cue or derived from pyproject.toml.
type Manifest struct {
	Name             string              `json:"name"`
	DeclaredVersion  string              `json:"version,omitempty"`
	Description      string              `json:"description"`
	Author           string              `json:"author"`
	AuthorEmail      string              `json:"authorEmail"`
	License          string              `json:"license"`
	URL              string              `json:"url"`
	RequiresPython   string              `json:"requiresPython"`
	Keywords         []string            `json:"keywords"`
	Classifiers      []string            `json:"classifiers"`
	Requires         []string            `json:"requires"`
	SetupRequires    []string            `json:"setupRequires"`
	PlatformRequires map[string][]string `json:"platformRequires,omitempty"`

	VersionFile string `json:"versionFile"`
	Readme      string `json:"readme"`
	History     string `json:"history"`

	Packages           Packages            `json:"packages"`
	PackageDir         map[string]string   `json:"packageDir,omitempty"`
	PackageData        map[string][]string `json:"packageData,omitempty"`
	IncludePackageData bool                `json:"includePackageData"`
	ZipSafe            bool                `json:"zipSafe"`

	EntryPoints EntryPoints `json:"entryPoints"`
	Resources   Resources   `json:"resources"`
	App         App         `json:"app"`
}

// Metadata is the fully loaded, immutable project description.
type Metadata struct {
	Manifest

	// Version is the constant read from the version file.
	Version string

	// LongDescription is README + "\n\n" + history.
	LongDescription string

	// Root is the absolute project directory.
	Root string

	// ManifestPath is the absolute path of the manifest that was loaded.
	ManifestPath string

	// Source is the manifest format.
	Source Source

	// InitModule is the parsed version file.
	InitModule InitModule

	// DiscoveredPackages is the package list after discovery plus extras.
	DiscoveredPackages []string
}

// AppScript returns the entry script used for application bundling.
func (m *Metadata) AppScript() string {
	if m.App.Script != "" {
		return m.App.Script
	}
	return m.Name + ".py"
}
