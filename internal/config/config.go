package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunParams are the six positional run identifiers, all opaque strings
// except PDBID and Aurora which drive receptor selection.
type RunParams struct {
	Epoch      string
	NumMols    string
	BatchSize  string
	PDBID      string
	Aurora     string
	Experiment string
}

// Tools names the external executables the pipeline shells out to, plus a
// per-invocation timeout (zero means no timeout, matching the original
// pipeline's behavior).
type Tools struct {
	Scrub           string        `yaml:"scrub"`
	PrepareLigand   string        `yaml:"prepare_ligand"`
	PrepareReceptor string        `yaml:"prepare_receptor"`
	AutoGrid        string        `yaml:"autogrid"`
	Vina            string        `yaml:"vina"`
	Timeout         time.Duration `yaml:"timeout"`
}

// DefaultTools returns the stock tool names, resolved through PATH.
// VINABATCH_* environment variables override individual tools, so a .env
// file can point at non-standard installs without a config file.
func DefaultTools() Tools {
	return Tools{
		Scrub:           envOr("VINABATCH_SCRUB", "scrub.py"),
		PrepareLigand:   envOr("VINABATCH_PREPARE_LIGAND", "mk_prepare_ligand.py"),
		PrepareReceptor: envOr("VINABATCH_PREPARE_RECEPTOR", "mk_prepare_receptor.py"),
		AutoGrid:        envOr("VINABATCH_AUTOGRID", "autogrid4"),
		Vina:            envOr("VINABATCH_VINA", "vina"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadTools reads a YAML tools file and overlays it on the defaults.
// Missing keys keep their default values.
func LoadTools(path string) (Tools, error) {
	tools := DefaultTools()

	data, err := os.ReadFile(path)
	if err != nil {
		return tools, fmt.Errorf("read tools config: %w", err)
	}
	if err := yaml.Unmarshal(data, &tools); err != nil {
		return tools, fmt.Errorf("parse tools config %s: %w", path, err)
	}
	return tools, nil
}

// ServeConfig holds configuration for the run-history server.
type ServeConfig struct {
	Addr      string // Listen address (default ":8080")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	DBPath    string // SQLite ledger path
}

// DefaultServeConfig returns sensible defaults.
func DefaultServeConfig() ServeConfig {
	return ServeConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}
