package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
)

// FindManifest returns the manifest path and format for root, preferring
// relkit.cue over pyproject.toml.
func FindManifest(root string) (string, Source, error) {
	candidates := []struct {
		name   string
		source Source
	}{
		{CUEManifest, SourceCUE},
		{PyprojectManifest, SourcePyproject},
	}
	for _, c := range candidates {
		p := filepath.Join(root, c.name)
		if _, err := os.Stat(p); err == nil {
			return p, c.source, nil
		}
	}
	return "", "", oerrors.NewNotFoundError(
		fmt.Sprintf("no %s or %s found", CUEManifest, PyprojectManifest),
		root,
		"Run relkit from the project root or pass --project <dir>",
	)
}

// Load reads the project at root. The version always comes from the version
// file; a static manifest version that disagrees with it is rejected.
func Load(root string) (*Metadata, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %q: %w", root, err)
	}

	manifestPath, source, err := FindManifest(abs)
	if err != nil {
		return nil, err
	}
	output.Debug("loading manifest", "path", manifestPath, "source", source)

	var m *Manifest
	switch source {
	case SourceCUE:
		loader, err := NewManifestLoader()
		if err != nil {
			return nil, err
		}
		if m, err = loader.LoadFile(manifestPath); err != nil {
			return nil, err
		}
	default:
		if m, err = LoadPyproject(manifestPath); err != nil {
			return nil, err
		}
	}

	versionPath := filepath.Join(abs, filepath.FromSlash(m.VersionFile))
	mod, err := ReadInitModule(versionPath)
	if err != nil {
		return nil, err
	}

	if m.DeclaredVersion != "" && m.DeclaredVersion != mod.Version {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("manifest declares version %q but %s sets %q", m.DeclaredVersion, m.VersionFile, mod.Version),
			manifestPath,
			"version",
			"Remove the static version from the manifest; the version file is authoritative",
		)
	}

	// pyproject.toml may omit authors; fall back to __author__.
	if m.Author == "" {
		m.Author = mod.Dunders["author"]
	}

	md := &Metadata{
		Manifest:     *m,
		Version:      mod.Version,
		Root:         abs,
		ManifestPath: manifestPath,
		Source:       source,
		InitModule:   mod,
	}

	if err := md.validate(); err != nil {
		return nil, err
	}

	readme, err := readDoc(abs, md.Readme, "readme")
	if err != nil {
		return nil, err
	}
	history, err := readDoc(abs, md.History, "history")
	if err != nil {
		return nil, err
	}
	md.LongDescription = readme + "\n\n" + history

	found, err := DiscoverPackages(os.DirFS(abs), md.Packages.Include)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), manifestPath, "packages.include", "")
	}
	md.Packages.Include = nonNil(md.Packages.Include)
	md.DiscoveredPackages = mergePackages(found, md.Packages.Extra)

	return md, nil
}

// validate checks the fields that must be non-empty.
func (m *Metadata) validate() error {
	required := []struct {
		field, value string
	}{
		{"name", m.Name},
		{"version", m.Version},
		{"author", m.Author},
		{"license", m.License},
		{"url", m.URL},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return oerrors.NewValidationError(
		"required metadata must be non-empty: "+strings.Join(missing, ", "),
		m.ManifestPath,
		missing[0],
		"",
	)
}

func readDoc(root, name, field string) (string, error) {
	p := filepath.Join(root, filepath.FromSlash(name))
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", oerrors.NewNotFoundError(
				field+" document not found",
				p,
				fmt.Sprintf("Create %s or set %s in the manifest", name, field),
			)
		}
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}
