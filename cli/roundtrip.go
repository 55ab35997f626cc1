// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pocheck/config"
	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/roundtrip"
	"codeberg.org/pixivfe/pocheck/i18n"
)

func (a *app) createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-test",
		Short: "Write a marker-wrapped test catalog from the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.observe(cmd.Name(), func() error {
				_, err := roundtrip.CreateTest(cmd.Context(), a.cfg.RoundTripPaths(), a.cfg.RoundTrip.Lang)

				return err
			})
		},
	}

	config.RegisterRoundTripFlags(cmd.Flags())

	return cmd
}

func (a *app) testGettextCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-gettext",
		Short: "Check that every message survives a lookup through gettext",
		Long: `test-gettext writes the test catalog as create-test does, loads it
through the gettext runtime and verifies that every lookup returns the
marker-wrapped msgid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.observe(cmd.Name(), func() error {
				return a.testGettext(cmd)
			})
		},
	}

	config.RegisterRoundTripFlags(cmd.Flags())

	return cmd
}

func (a *app) testGettext(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rtCfg := a.cfg.RoundTrip

	paths := a.cfg.RoundTripPaths()

	if _, err := roundtrip.CreateTest(ctx, paths, rtCfg.Lang); err != nil {
		return err
	}

	// Test what was written, so the .po round trips through disk too.
	written, err := catalog.Load(paths.PoFile)
	if err != nil {
		return err
	}

	rt, err := i18n.Open(rtCfg.LocaleDir, rtCfg.Lang, rtCfg.Domain)
	if err != nil {
		return err
	}

	logger := log.With().Str("sys", "roundtrip").Logger()

	res, err := roundtrip.Test(ctx, written, rt, logger, a.cfg.Validation.Verbose)
	if res != nil {
		a.metrics.ObserveRoundTrip(res.Valid, res.Failed)
	}

	if errors.Is(err, roundtrip.ErrFailures) {
		logger.Error().Err(err).Msg("Round trip failed")

		return ErrChecksFailed
	}

	if err != nil {
		return err
	}

	logger.Info().Msgf("%d translations in %d messages successfully tested", res.Translations, res.Messages)

	return nil
}
