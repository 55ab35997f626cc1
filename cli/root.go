// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package cli implements the pocheck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pocheck/config"
	"codeberg.org/pixivfe/pocheck/core/metrics"
)

// ErrChecksFailed is returned when a run finds flawed entries, unreadable
// files or round-trip failures. The report has already been printed.
var ErrChecksFailed = errors.New("checks failed")

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	stdout  io.Writer
}

// Execute runs the pocheck command line against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(&config.Global, os.Stdout).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Configuration is loaded into cfg
// before a subcommand runs; the report is written to stdout.
func NewRootCommand(cfg *config.Config, stdout io.Writer) *cobra.Command {
	a := &app{cfg: cfg, stdout: stdout}

	root := &cobra.Command{
		Use:   "pocheck",
		Short: "Check gettext catalogs for placeholder mistakes",
		Long: `pocheck validates the placeholders of gettext templates and translations,
and tests that a catalog survives a round trip through the gettext runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	config.RegisterCheckFlags(root.PersistentFlags())

	root.AddCommand(
		a.validatePotCommand(),
		a.validatePoCommand(),
		a.createTestCommand(),
		a.testGettextCommand(),
		newVersionCommand(),
	)

	return root
}

func (a *app) load(cmd *cobra.Command) error {
	configFile, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return err
	}

	err = a.cfg.LoadConfig(configFile, func() error {
		return config.ApplyFlags(cmd.Flags(), a.cfg)
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a.metrics = metrics.New()

	return nil
}

// observe times run under the command name and writes the metrics
// textfile when one is configured, whatever the outcome of run.
func (a *app) observe(command string, run func() error) error {
	start := time.Now()
	err := run()

	a.metrics.ObserveRun(command, start, time.Now())

	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if werr := a.metrics.WriteTextfile(path); werr != nil {
			log.Error().Err(werr).Str("path", path).Msg("Failed to write metrics")
		}
	}

	return err
}
