package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// placeholderRegex matches {name} placeholders in command lines.
var placeholderRegex = regexp.MustCompile(`\{([a-z]+)\}`)

var knownPlaceholders = map[string]bool{"python": true, "rcc": true, "twine": true}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the configuration. Empty fields are allowed (defaults
// apply); set fields must be usable.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	tools := map[string]string{
		"tools.python": cfg.Tools.Python,
		"tools.rcc":    cfg.Tools.RCC,
		"tools.twine":  cfg.Tools.Twine,
	}
	for _, field := range []string{"tools.python", "tools.rcc", "tools.twine"} {
		v := tools[field]
		if v != "" && strings.TrimSpace(v) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "must not be empty or whitespace only"})
		}
	}

	commands := []struct {
		field string
		line  string
	}{
		{"commands.install", cfg.Commands.Install},
		{"commands.develop", cfg.Commands.Develop},
		{"commands.build", cfg.Commands.Build},
		{"commands.upload", cfg.Commands.Upload},
	}
	for _, c := range commands {
		if c.line == "" {
			continue
		}
		if err := validateCommandLine(c.line); err != nil {
			errs = append(errs, ValidationError{Field: c.field, Message: err.Error()})
		}
	}

	if strings.ContainsAny(cfg.Release.TagPrefix, " \t\n~^:?*[\\") {
		errs = append(errs, ValidationError{
			Field:   "release.tagPrefix",
			Message: "must not contain whitespace or characters invalid in git ref names",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateCommandLine checks a configured command line splits into at least
// one word and only uses known placeholders.
func validateCommandLine(line string) error {
	for _, m := range placeholderRegex.FindAllStringSubmatch(line, -1) {
		if !knownPlaceholders[m[1]] {
			return fmt.Errorf("unknown placeholder {%s}", m[1])
		}
	}

	words, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("cannot be split into arguments: %w", err)
	}
	if len(words) == 0 {
		return fmt.Errorf("must contain a command")
	}
	return nil
}

// ValidateFile checks a configuration file against the schema, then loads
// and validates its values.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := ValidateSchema(data); err != nil {
		return err
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return Validate(cfg)
}
