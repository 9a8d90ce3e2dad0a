package project

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	oerrors "github.com/opmodel/relkit/internal/errors"
)

// InitModule holds the module-level dunder string constants of a package
// initialization file, e.g. __version__ = '1.8.6'.
type InitModule struct {
	Version string
	// Dunders maps names without the surrounding underscores
	// ("version", "author") to their string values.
	Dunders map[string]string
}

var dunderAssign = regexp.MustCompile(`^__([A-Za-z][A-Za-z0-9_]*?)__\s*=\s*(?:'([^'\\]*)'|"([^"\\]*)")\s*(?:#.*)?$`)

// ParseInitModule scans src for top-level dunder string assignments. Only
// literal single- or double-quoted strings are recognized. Nothing is
// evaluated.
func ParseInitModule(src []byte) (InitModule, error) {
	mod := InitModule{Dunders: make(map[string]string)}

	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		m := dunderAssign.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		val := m[2]
		if val == "" {
			val = m[3]
		}
		// First assignment wins.
		if _, seen := mod.Dunders[m[1]]; !seen {
			mod.Dunders[m[1]] = val
		}
	}
	if err := sc.Err(); err != nil {
		return InitModule{}, fmt.Errorf("scanning init module: %w", err)
	}

	mod.Version = strings.TrimSpace(mod.Dunders["version"])
	if mod.Version == "" {
		return InitModule{}, errNoVersion
	}
	return mod, nil
}

var errNoVersion = fmt.Errorf("no __version__ string assignment found")

// ReadInitModule reads and parses the version file at path.
func ReadInitModule(path string) (InitModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return InitModule{}, oerrors.NewNotFoundError(
				"version file not found",
				path,
				"Set versionFile in the manifest or create the file with a __version__ assignment",
			)
		}
		return InitModule{}, fmt.Errorf("reading version file %s: %w", path, err)
	}

	mod, err := ParseInitModule(data)
	if err != nil {
		return InitModule{}, oerrors.NewValidationError(
			err.Error(),
			path,
			"__version__",
			"Add a line such as: __version__ = '1.0.0'",
		)
	}
	return mod, nil
}
