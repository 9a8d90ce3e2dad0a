package project

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	oerrors "github.com/opmodel/relkit/internal/errors"
)

// pyproject mirrors the subset of pyproject.toml relkit reads.
type pyproject struct {
	BuildSystem struct {
		Requires []string `toml:"requires"`
	} `toml:"build-system"`

	Project struct {
		Name           string            `toml:"name"`
		Version        string            `toml:"version"`
		Description    string            `toml:"description"`
		Readme         any               `toml:"readme"`
		RequiresPython string            `toml:"requires-python"`
		License        any               `toml:"license"`
		Authors        []pyPerson        `toml:"authors"`
		Keywords       []string          `toml:"keywords"`
		Classifiers    []string          `toml:"classifiers"`
		Dependencies   []string          `toml:"dependencies"`
		URLs           map[string]string `toml:"urls"`
		Scripts        map[string]string `toml:"scripts"`
		GUIScripts     map[string]string `toml:"gui-scripts"`
	} `toml:"project"`

	Tool struct {
		Relkit relkitTable `toml:"relkit"`
	} `toml:"tool"`
}

type pyPerson struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// relkitTable is [tool.relkit].
type relkitTable struct {
	VersionFile        string              `toml:"version-file"`
	History            string              `toml:"history"`
	URL                string              `toml:"url"`
	PlatformRequires   map[string][]string `toml:"platform-requires"`
	PackageDir         map[string]string   `toml:"package-dir"`
	PackageData        map[string][]string `toml:"package-data"`
	IncludePackageData *bool               `toml:"include-package-data"`
	ZipSafe            *bool               `toml:"zip-safe"`
	Packages           struct {
		Include []string `toml:"include"`
		Extra   []string `toml:"extra"`
	} `toml:"packages"`
	Resources struct {
		QRC     string   `toml:"qrc"`
		Output  string   `toml:"output"`
		Targets []string `toml:"targets"`
	} `toml:"resources"`
	App struct {
		Script        string `toml:"script"`
		ArgvEmulation *bool  `toml:"argv-emulation"`
		IconFile      string `toml:"icon-file"`
	} `toml:"app"`
}

// LoadPyproject reads the manifest from a pyproject.toml file.
func LoadPyproject(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("manifest not found", path, "")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParsePyproject(path, data)
}

// ParsePyproject decodes pyproject.toml content and applies the same
// defaults as the CUE schema.
func ParsePyproject(path string, data []byte) (*Manifest, error) {
	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		var derr *toml.DecodeError
		field := ""
		if errors.As(err, &derr) {
			field = strings.Join(derr.Key(), ".")
			row, col := derr.Position()
			path = fmt.Sprintf("%s:%d:%d", path, row, col)
		}
		return nil, oerrors.NewValidationError(err.Error(), path, field, "Check pyproject.toml for TOML syntax errors")
	}

	p := pp.Project
	rk := pp.Tool.Relkit

	m := defaultManifest()
	m.Name = p.Name
	m.DeclaredVersion = p.Version
	m.Description = p.Description
	m.Keywords = nonNil(p.Keywords)
	m.Classifiers = nonNil(p.Classifiers)
	m.Requires = nonNil(p.Dependencies)
	if p.RequiresPython != "" {
		m.RequiresPython = p.RequiresPython
	}
	if len(pp.BuildSystem.Requires) > 0 {
		m.SetupRequires = pp.BuildSystem.Requires
	}
	if len(p.Authors) > 0 {
		m.Author = p.Authors[0].Name
		m.AuthorEmail = p.Authors[0].Email
	}

	lic, err := pyLicense(p.License)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "project.license", "Use license = \"MIT\" or license = { text = \"MIT\" }")
	}
	m.License = lic

	readme, err := pyReadme(p.Readme)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "project.readme", "Use readme = \"README.rst\" or readme = { file = \"README.rst\" }")
	}
	if readme != "" {
		m.Readme = readme
	}

	m.URL = rk.URL
	if m.URL == "" {
		m.URL = homepage(p.URLs)
	}

	m.EntryPoints.ConsoleScripts = scriptEntries(p.Scripts)

	if rk.VersionFile != "" {
		m.VersionFile = rk.VersionFile
	}
	if rk.History != "" {
		m.History = rk.History
	}
	m.PlatformRequires = rk.PlatformRequires
	m.PackageDir = rk.PackageDir
	m.PackageData = rk.PackageData
	if rk.IncludePackageData != nil {
		m.IncludePackageData = *rk.IncludePackageData
	}
	if rk.ZipSafe != nil {
		m.ZipSafe = *rk.ZipSafe
	}
	m.Packages.Include = nonNil(rk.Packages.Include)
	m.Packages.Extra = nonNil(rk.Packages.Extra)

	if rk.Resources.QRC != "" {
		m.Resources.QRC = rk.Resources.QRC
	}
	if rk.Resources.Output != "" {
		m.Resources.Output = rk.Resources.Output
	}
	if rk.Resources.Targets != nil {
		m.Resources.Targets = rk.Resources.Targets
	}

	m.App.Script = rk.App.Script
	if rk.App.ArgvEmulation != nil {
		m.App.ArgvEmulation = *rk.App.ArgvEmulation
	}
	if rk.App.IconFile != "" {
		m.App.IconFile = rk.App.IconFile
	}

	return m, nil
}

// defaultManifest returns a manifest holding the schema defaults.
func defaultManifest() *Manifest {
	return &Manifest{
		RequiresPython:     ">=3.0.0",
		Keywords:           []string{},
		Classifiers:        []string{},
		Requires:           []string{},
		SetupRequires:      []string{"setuptools>=64", "wheel"},
		VersionFile:        "libs/__init__.py",
		Readme:             "README.rst",
		History:            "HISTORY.rst",
		IncludePackageData: true,
		Resources: Resources{
			QRC:     "resources.qrc",
			Output:  "resources.py",
			Targets: []string{".", "libs"},
		},
		App: App{
			ArgvEmulation: true,
			IconFile:      "resources/icons/app.icns",
		},
	}
}

// pyLicense accepts a license string or a {text = ...} table.
func pyLicense(v any) (string, error) {
	switch l := v.(type) {
	case nil:
		return "", nil
	case string:
		return l, nil
	case map[string]any:
		if text, ok := l["text"].(string); ok {
			return text, nil
		}
		if file, ok := l["file"].(string); ok {
			return file, nil
		}
		return "", fmt.Errorf("license table needs a text or file key")
	default:
		return "", fmt.Errorf("unsupported license value of type %T", v)
	}
}

// pyReadme accepts a readme path or a {file = ...} table.
func pyReadme(v any) (string, error) {
	switch r := v.(type) {
	case nil:
		return "", nil
	case string:
		return r, nil
	case map[string]any:
		if file, ok := r["file"].(string); ok {
			return file, nil
		}
		return "", fmt.Errorf("readme table needs a file key")
	default:
		return "", fmt.Errorf("unsupported readme value of type %T", v)
	}
}

// homepage picks the project URL: Homepage, then Source, then the first
// entry in key order.
func homepage(urls map[string]string) string {
	for _, k := range []string{"Homepage", "homepage", "Source", "source"} {
		if u, ok := urls[k]; ok && u != "" {
			return u
		}
	}
	keys := make([]string, 0, len(urls))
	for k := range urls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if urls[k] != "" {
			return urls[k]
		}
	}
	return ""
}

// scriptEntries converts [project.scripts] into "name=target" entries
// sorted by name.
func scriptEntries(scripts map[string]string) []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+"="+scripts[name])
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
