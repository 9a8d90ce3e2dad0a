package project

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never searched for packages.
var skipDirs = map[string]bool{
	"build":        true,
	"dist":         true,
	"__pycache__":  true,
	"node_modules": true,
}

// DiscoverPackages walks fsys and returns the dotted names of directories
// that contain an __init__.py, filtered by include patterns. Patterns are
// matched against dotted names, so "labelImg.*" selects every subpackage of
// labelImg. An empty include list selects everything. The result is sorted.
func DiscoverPackages(fsys fs.FS, include []string) ([]string, error) {
	for _, pat := range include {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid package pattern %q", pat)
		}
	}

	var found []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == "." {
			return nil
		}
		name := d.Name()
		if skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".egg-info") {
			return fs.SkipDir
		}
		if _, err := fs.Stat(fsys, path.Join(p, "__init__.py")); err != nil {
			return nil
		}

		dotted := strings.ReplaceAll(p, "/", ".")
		if matchesAny(include, dotted) {
			found = append(found, dotted)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering packages: %w", err)
	}

	slices.Sort(found)
	return found, nil
}

func matchesAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// mergePackages appends extra names not already present.
func mergePackages(found, extra []string) []string {
	out := slices.Clone(found)
	for _, e := range extra {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}
