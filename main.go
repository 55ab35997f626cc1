// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
pocheck checks gettext catalogs for placeholder mistakes and tests that
translations survive a round trip through the gettext runtime.
*/
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocheck/cli"
	"codeberg.org/pixivfe/pocheck/core/audit"
)

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		// The report already explains a failed check.
		if !errors.Is(err, cli.ErrChecksFailed) {
			log.Error().Err(err).Msg("pocheck failed")
		}

		os.Exit(1)
	}
}

func run() error {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
