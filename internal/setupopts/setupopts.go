// Package setupopts assembles the setup declaration handed to the Python
// packaging toolchain from the loaded project metadata.
package setupopts

import (
	"slices"
	"strings"

	"github.com/opmodel/relkit/internal/platform"
	"github.com/opmodel/relkit/internal/project"
)

// Py2AppOptions configures the application bundler.
type Py2AppOptions struct {
	ArgvEmulation bool   `json:"argv_emulation"`
	IconFile      string `json:"iconfile"`
}

// BundleOptions is the options section of an app bundle declaration.
type BundleOptions struct {
	Py2App Py2AppOptions `json:"py2app"`
}

// Declaration is the full setup record. Field names follow setuptools
// keywords so the YAML and JSON output can be fed to it directly.
type Declaration struct {
	Name               string              `json:"name"`
	Version            string              `json:"version"`
	Description        string              `json:"description"`
	LongDescription    string              `json:"long_description"`
	Author             string              `json:"author"`
	AuthorEmail        string              `json:"author_email,omitempty"`
	URL                string              `json:"url"`
	PythonRequires     string              `json:"python_requires"`
	PackageDir         map[string]string   `json:"package_dir,omitempty"`
	Packages           []string            `json:"packages"`
	EntryPoints        map[string][]string `json:"entry_points,omitempty"`
	IncludePackageData bool                `json:"include_package_data"`
	InstallRequires    []string            `json:"install_requires"`
	License            string              `json:"license"`
	ZipSafe            bool                `json:"zip_safe"`
	Keywords           string              `json:"keywords"`
	Classifiers        []string            `json:"classifiers"`
	PackageData        map[string][]string `json:"package_data,omitempty"`
	SetupRequires      []string            `json:"setup_requires"`
	CmdClass           []string            `json:"cmdclass"`

	// App and Options are set only when bundling is requested.
	App     []string       `json:"app,omitempty"`
	Options *BundleOptions `json:"options,omitempty"`
}

// Input selects what Build assembles.
type Input struct {
	Metadata *project.Metadata
	// Platform is the host identifier passed to platform.Resolve.
	Platform string
	// Commands are the registered custom command names, in table order.
	Commands []string
	// App adds the application bundle section.
	App bool
}

// Build returns the declaration for in. It does not modify the metadata.
func Build(in Input) Declaration {
	md := in.Metadata

	d := Declaration{
		Name:               md.Name,
		Version:            md.Version,
		Description:        md.Description,
		LongDescription:    md.LongDescription,
		Author:             md.Author,
		AuthorEmail:        md.AuthorEmail,
		URL:                md.URL,
		PythonRequires:     md.RequiresPython,
		PackageDir:         md.PackageDir,
		Packages:           orEmpty(md.DiscoveredPackages),
		IncludePackageData: md.IncludePackageData,
		InstallRequires:    orEmpty(md.Requires),
		License:            md.License,
		ZipSafe:            md.ZipSafe,
		Keywords:           strings.Join(md.Keywords, " "),
		Classifiers:        orEmpty(md.Classifiers),
		PackageData:        md.PackageData,
		SetupRequires:      Dependencies(md, in.Platform),
		CmdClass:           orEmpty(slices.Clone(in.Commands)),
	}

	if len(md.EntryPoints.ConsoleScripts) > 0 {
		d.EntryPoints = map[string][]string{
			"console_scripts": slices.Clone(md.EntryPoints.ConsoleScripts),
		}
	}

	if in.App {
		d.App = []string{md.AppScript()}
		d.Options = &BundleOptions{
			Py2App: Py2AppOptions{
				ArgvEmulation: md.App.ArgvEmulation,
				IconFile:      md.App.IconFile,
			},
		}
	}
	return d
}

// Dependencies returns the resolved build-time dependency set for the
// platform identified by platformID.
func Dependencies(md *project.Metadata, platformID string) []string {
	return platform.Resolve(platformID, md.SetupRequires, platform.ExtrasFromManifest(md.PlatformRequires))
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
