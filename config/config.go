// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config loads the pocheck configuration.

Sources are applied in increasing order of precedence: built-in defaults,
a YAML file, a .env file, POCHECK_* environment variables and finally
command-line flags that were explicitly set. The .env file never overrides
variables already present in the environment.
*/
package config

import (
	"fmt"
	"os"
	"runtime"

	"codeberg.org/pixivfe/pocheck/core/roundtrip"
	"codeberg.org/pixivfe/pocheck/core/substitution"
)

// Global exposes the configuration of the running command.
var Global Config

// Default configuration file names, tried in order.
const (
	defaultConfigFile    = "./pocheck.yaml"
	defaultConfigFileAlt = "./pocheck.yml"

	configFileEnv = "POCHECK_CONFIGFILE"
)

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Validation struct {
		Pedantic    bool `env:"POCHECK_PEDANTIC,overwrite"     yaml:"pedantic"`
		ShowStrings bool `env:"POCHECK_SHOW_STRINGS,overwrite" yaml:"showStrings"`
		Verbose     bool `env:"POCHECK_VERBOSE,overwrite"      yaml:"verbose"`
		// Jobs bounds concurrent file checks; 0 means one per CPU.
		Jobs int `env:"POCHECK_JOBS,overwrite" yaml:"jobs"`
	} `yaml:"validation"`

	RoundTrip struct {
		// TestLang names the synthetic .po file, "<TestLang>.po".
		TestLang  string `env:"POCHECK_TEST_LANG,overwrite"  yaml:"testLang"`
		Lang      string `env:"POCHECK_LANG,overwrite"       yaml:"lang"`
		Domain    string `env:"POCHECK_DOMAIN,overwrite"     yaml:"domain"`
		LocaleDir string `env:"POCHECK_LOCALE_DIR,overwrite" yaml:"localeDir"`
		PotFile   string `env:"POCHECK_POT_FILE,overwrite"   yaml:"potFile"`
	} `yaml:"roundTrip"`

	Output struct {
		// Color is one of "auto", "on" or "off".
		Color string `env:"POCHECK_COLOR,overwrite" yaml:"color"`
	} `yaml:"output"`

	Metrics struct {
		// TextfilePath, when set, receives Prometheus metrics after each run.
		TextfilePath string `env:"POCHECK_METRICS_FILE,overwrite" yaml:"textfilePath"`
	} `yaml:"metrics"`

	Log struct {
		Level   string   `env:"POCHECK_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"POCHECK_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"POCHECK_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from its sources.
//
// configFile is the path given on the command line, empty when none was
// given. override, when non-nil, runs after the environment has been read
// and is where explicitly set command-line flags are applied.
func (cfg *Config) LoadConfig(configFile string, override func() error) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(resolveConfigFile(configFile)); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if override != nil {
		if err := override(); err != nil {
			return fmt.Errorf("error applying command-line flags: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// resolveConfigFile picks the YAML file with the precedence flag, then
// POCHECK_CONFIGFILE, then ./pocheck.yaml falling back to ./pocheck.yml.
func resolveConfigFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envVar := os.Getenv(configFileEnv); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(defaultConfigFile); os.IsNotExist(err) {
		if _, statErr := os.Stat(defaultConfigFileAlt); statErr == nil {
			return defaultConfigFileAlt
		}
	}

	return defaultConfigFile
}

// Options returns the check options.
func (cfg *Config) Options() substitution.Options {
	return substitution.Options{
		Pedantic:    cfg.Validation.Pedantic,
		ShowStrings: cfg.Validation.ShowStrings,
		Verbose:     cfg.Validation.Verbose,
	}
}

// JobLimit returns the number of files checked concurrently.
func (cfg *Config) JobLimit() int {
	if cfg.Validation.Jobs == 0 {
		return runtime.NumCPU()
	}

	return cfg.Validation.Jobs
}

// RoundTripPaths returns the files read and written by the round-trip test.
func (cfg *Config) RoundTripPaths() roundtrip.Paths {
	rt := cfg.RoundTrip

	return roundtrip.NewPaths(rt.PotFile, rt.TestLang, rt.LocaleDir, rt.Lang, rt.Domain)
}

// UseColor reports whether the report should be coloured.
func (cfg *Config) UseColor() bool {
	switch cfg.Output.Color {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
	}
}
