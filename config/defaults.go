// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// Colour modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Validation.Pedantic = false
	cfg.Validation.ShowStrings = false
	cfg.Validation.Verbose = false
	cfg.Validation.Jobs = 0

	cfg.RoundTrip.TestLang = "test"
	cfg.RoundTrip.Lang = "xh_ZA"
	cfg.RoundTrip.Domain = "ipa"
	cfg.RoundTrip.LocaleDir = "test_locale"
	cfg.RoundTrip.PotFile = "ipa.pot"

	cfg.Output.Color = ColorAuto

	cfg.Metrics.TextfilePath = ""

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
