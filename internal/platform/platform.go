// Package platform maps host identifiers to platform families and resolves
// the build-time dependency set for a family.
package platform

import (
	"runtime"
	"slices"
	"sort"
	"strings"
)

// Family is a host platform family.
type Family string

const (
	Linux   Family = "linux"
	Darwin  Family = "darwin"
	Windows Family = "windows"
	Unknown Family = "unknown"
)

// BundleTool is the application bundler added on Darwin and recognized as a
// command-line argument by AppBundleRequested.
const BundleTool = "py2app"

// DefaultExtras are the entries appended per family when the manifest does
// not declare platformRequires.
var DefaultExtras = map[Family][]string{
	Darwin: {BundleTool},
}

// Detect maps a platform identifier to its family. Both Go (GOOS) and
// interpreter-style identifiers are accepted.
func Detect(id string) Family {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "linux", "linux2":
		return Linux
	case "darwin":
		return Darwin
	case "windows", "win32":
		return Windows
	default:
		return Unknown
	}
}

// Host returns the family of the running process.
func Host() Family {
	return Detect(runtime.GOOS)
}

// Resolve returns base with the extras for the family of platformID
// appended. Entries already present are not added again. base is never
// modified; a nil extras map means DefaultExtras.
func Resolve(platformID string, base []string, extras map[Family][]string) []string {
	if extras == nil {
		extras = DefaultExtras
	}

	out := slices.Clone(base)
	if out == nil {
		out = []string{}
	}
	for _, e := range extras[Detect(platformID)] {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}

// ExtrasFromManifest converts manifest platformRequires keys into families.
// Keys may be any identifier Detect understands. A nil map yields nil so
// Resolve falls back to DefaultExtras.
func ExtrasFromManifest(m map[string][]string) map[Family][]string {
	if m == nil {
		return nil
	}

	// Iterate in key order so merged entries are deterministic.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[Family][]string, len(m))
	for _, k := range keys {
		f := Detect(k)
		out[f] = append(out[f], m[k]...)
	}
	return out
}

// AppBundleRequested reports whether the bundling tool name appears among
// args.
func AppBundleRequested(args []string) bool {
	return slices.Contains(args, BundleTool)
}
