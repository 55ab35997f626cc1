// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RunID identifies one invocation of pocheck in aggregated logs.
var RunID = uuid.NewString()

// SetDefaultLogger provides an ok log output format on startup if no config is set.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// WithRunID returns logger with the run id attached.
func WithRunID(logger zerolog.Logger) zerolog.Logger {
	return logger.With().Str("run", RunID).Logger()
}
