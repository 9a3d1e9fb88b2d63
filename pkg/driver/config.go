// Package driver wires the parser, interpreter, and backend into runnable
// sessions: a single-file batch run or a persistent REPL, both configured
// through an optional YAML run-configuration file, matching the
// "Driver surface" contract from §5.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is mysorescript.yml's parsed contents: session-wide knobs that
// don't belong on the command line because they rarely change between
// invocations of the same project.
type Config struct {
	Path string

	// CompileThreshold overrides interpreter.CompileThreshold when
	// positive; zero means "use the default".
	CompileThreshold int
	// Backend selects which pkg/backend implementation the driver wires
	// in. Currently only "reference" and "" (no tier-up) are recognized.
	Backend string
}

type configFile struct {
	CompileThreshold int    `yaml:"compile_threshold"`
	Backend          string `yaml:"backend"`
}

// ValidationError aggregates configuration problems the same way the
// teacher's manifest loader does, so a user sees every mistake at once
// instead of one at a time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	msg := "mysorescript.yml: invalid configuration"
	for _, issue := range e.Issues {
		msg += "\n- " + issue
	}
	return msg
}

// LoadConfig reads and validates a run-configuration file. A missing file
// is not an error — DefaultConfig is used instead — but a malformed one
// is.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := &Config{Path: absPath, CompileThreshold: raw.CompileThreshold, Backend: raw.Backend}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig is what a session without a mysorescript.yml gets: tier-up
// disabled, since a backend is opt-in per the core's own contract ("the
// core does not require the backend to exist; absence disables tier-up").
func DefaultConfig() *Config {
	return &Config{Backend: ""}
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.CompileThreshold < 0 {
		errs.Issues = append(errs.Issues, "compile_threshold must not be negative")
	}
	switch c.Backend {
	case "", "reference":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("backend %q is not recognized (want \"\" or \"reference\")", c.Backend))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
