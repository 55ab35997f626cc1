// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the command-line layer.
const (
	FlagConfig      = "config"
	FlagShowStrings = "show-strings"
	FlagPedantic    = "pedantic"
	FlagVerbose     = "verbose"
	FlagJobs        = "jobs"
	FlagColor       = "color"
	FlagMetricsFile = "metrics-file"
	FlagLogLevel    = "log-level"

	FlagTestLang  = "test-lang"
	FlagLang      = "lang"
	FlagDomain    = "domain"
	FlagLocaleDir = "locale-dir"
	FlagPotFile   = "pot-file"
)

// RegisterCheckFlags defines the flags common to every command on fs.
// Defaults shown in the help text come from SetDefaults.
func RegisterCheckFlags(fs *pflag.FlagSet) {
	var d Config
	d.SetDefaults()

	fs.String(FlagConfig, "", "path to a pocheck configuration file in YAML format")
	fs.BoolP(FlagShowStrings, "s", d.Validation.ShowStrings, "print the offending strings below each error")
	fs.Bool(FlagPedantic, d.Validation.Pedantic, "also check placeholder syntax and whitespace")
	fs.BoolP(FlagVerbose, "v", d.Validation.Verbose, "print extra detail while checking")
	fs.Int(FlagJobs, d.Validation.Jobs, "files checked concurrently (0 means one per CPU)")
	fs.String(FlagColor, d.Output.Color, "colour the report: auto, on or off")
	fs.String(FlagMetricsFile, d.Metrics.TextfilePath, "write Prometheus metrics to this file after the run")
	fs.String(FlagLogLevel, d.Log.Level, "log level: trace, debug, info, warn or error")
}

// RegisterRoundTripFlags defines the flags of the round-trip commands on fs.
func RegisterRoundTripFlags(fs *pflag.FlagSet) {
	var d Config
	d.SetDefaults()

	fs.String(FlagTestLang, d.RoundTrip.TestLang, "base name of the synthetic .po file")
	fs.String(FlagLang, d.RoundTrip.Lang, "locale the test catalog is installed under")
	fs.String(FlagDomain, d.RoundTrip.Domain, "gettext domain")
	fs.String(FlagLocaleDir, d.RoundTrip.LocaleDir, "root directory of the compiled test catalog")
	fs.String(FlagPotFile, d.RoundTrip.PotFile, "template catalog")
}

type flagSetter func(fs *pflag.FlagSet, cfg *Config) error

func stringFlag(name string, dst func(*Config) *string) flagSetter {
	return func(fs *pflag.FlagSet, cfg *Config) error {
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}

		*dst(cfg) = v

		return nil
	}
}

func boolFlag(name string, dst func(*Config) *bool) flagSetter {
	return func(fs *pflag.FlagSet, cfg *Config) error {
		v, err := fs.GetBool(name)
		if err != nil {
			return err
		}

		*dst(cfg) = v

		return nil
	}
}

var flagSetters = map[string]flagSetter{
	FlagShowStrings: boolFlag(FlagShowStrings, func(c *Config) *bool { return &c.Validation.ShowStrings }),
	FlagPedantic:    boolFlag(FlagPedantic, func(c *Config) *bool { return &c.Validation.Pedantic }),
	FlagVerbose:     boolFlag(FlagVerbose, func(c *Config) *bool { return &c.Validation.Verbose }),
	FlagJobs: func(fs *pflag.FlagSet, cfg *Config) error {
		v, err := fs.GetInt(FlagJobs)
		if err != nil {
			return err
		}

		cfg.Validation.Jobs = v

		return nil
	},
	FlagColor:       stringFlag(FlagColor, func(c *Config) *string { return &c.Output.Color }),
	FlagMetricsFile: stringFlag(FlagMetricsFile, func(c *Config) *string { return &c.Metrics.TextfilePath }),
	FlagLogLevel:    stringFlag(FlagLogLevel, func(c *Config) *string { return &c.Log.Level }),
	FlagTestLang:    stringFlag(FlagTestLang, func(c *Config) *string { return &c.RoundTrip.TestLang }),
	FlagLang:        stringFlag(FlagLang, func(c *Config) *string { return &c.RoundTrip.Lang }),
	FlagDomain:      stringFlag(FlagDomain, func(c *Config) *string { return &c.RoundTrip.Domain }),
	FlagLocaleDir:   stringFlag(FlagLocaleDir, func(c *Config) *string { return &c.RoundTrip.LocaleDir }),
	FlagPotFile:     stringFlag(FlagPotFile, func(c *Config) *string { return &c.RoundTrip.PotFile }),
}

// ApplyFlags copies the flags explicitly set on fs into cfg. Flags left at
// their default do not override other configuration sources.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var firstErr error

	fs.Visit(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}

		if set, ok := flagSetters[f.Name]; ok {
			firstErr = set(fs, cfg)
		}
	})

	return firstErr
}
