// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pocheck/config"
	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/validate"
)

func (a *app) validatePotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-pot [pot...]",
		Short: "Check the placeholders of template msgids",
		Long: `validate-pot checks every msgid of the given templates for anonymous
placeholders and, with --pedantic, for malformed placeholder syntax.
Without arguments the configured template (--pot-file) is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{a.cfg.RoundTrip.PotFile}
			}

			return a.observe(cmd.Name(), func() error {
				return a.validate(cmd.Context(), validate.ModeTemplate, args)
			})
		},
	}

	config.RegisterRoundTripFlags(cmd.Flags())

	return cmd
}

func (a *app) validatePoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-po po...",
		Short: "Compare the placeholders of msgids and their translations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.observe(cmd.Name(), func() error {
				return a.validate(cmd.Context(), validate.ModeTranslated, args)
			})
		},
	}
}

func (a *app) validate(ctx context.Context, mode validate.Mode, paths []string) error {
	batch, err := validate.Files(ctx, paths, mode, a.cfg.Options(), a.cfg.JobLimit(), catalog.Load)
	if err != nil {
		return err
	}

	for _, result := range batch.Results {
		if result.Err != nil {
			log.Error().
				Err(result.Err).
				Str("path", result.Path).
				Msg("Failed to load catalog")
			a.metrics.ObserveInputError(mode.String())

			continue
		}

		a.metrics.ObserveFile(mode.String(), result.Path, result.Report.Entries, result.Report.Flawed())
	}

	if err := validate.NewRenderer(a.cfg.UseColor()).Batch(a.stdout, batch); err != nil {
		return err
	}

	if batch.Total() > 0 {
		return ErrChecksFailed
	}

	return nil
}
