// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"codeberg.org/pixivfe/pocheck/i18n"
)

// validation errors.
var (
	errInvalidLogLevel  = errors.New("invalid Log.Level value")
	errInvalidLogFormat = errors.New("invalid Log.Format value")
	errInvalidColorMode = errors.New("invalid Output.Color value")
	errInvalidJobs      = errors.New("Validation.Jobs must not be negative")
	errEmptyTestLang    = errors.New("RoundTrip.TestLang cannot be empty")
	errEmptyLocaleDir   = errors.New("RoundTrip.LocaleDir cannot be empty")
	errEmptyPotFile     = errors.New("RoundTrip.PotFile cannot be empty")
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
	validColorModes = []string{ColorAuto, ColorOn, ColorOff}
)

// validate checks the configuration and normalises case-insensitive values.
func (cfg *Config) validate() error {
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if !slices.Contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	if !slices.Contains(validColorModes, cfg.Output.Color) {
		return fmt.Errorf("%w: %q", errInvalidColorMode, cfg.Output.Color)
	}

	if cfg.Validation.Jobs < 0 {
		return fmt.Errorf("%w: %d", errInvalidJobs, cfg.Validation.Jobs)
	}

	rt := cfg.RoundTrip

	if _, err := i18n.ParseLang(rt.Lang); err != nil {
		return fmt.Errorf("RoundTrip.Lang: %w", err)
	}

	if err := i18n.ValidateDomain(rt.Domain); err != nil {
		return fmt.Errorf("RoundTrip.Domain: %w", err)
	}

	switch {
	case rt.TestLang == "":
		return errEmptyTestLang
	case rt.LocaleDir == "":
		return errEmptyLocaleDir
	case rt.PotFile == "":
		return errEmptyPotFile
	}

	return nil
}
