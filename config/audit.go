// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocheck/core/audit"
)

const logFilePermissions = 0o666

var logLevels = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// setupAudit points the global logger at the configured outputs.
func (cfg *Config) setupAudit() {
	if level, ok := logLevels[cfg.Log.Level]; ok {
		zerolog.SetGlobalLevel(level)
	}

	writers := []io.Writer{}

	if len(cfg.Log.Outputs) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}

	for _, output := range cfg.Log.Outputs {
		var w io.Writer

		switch output {
		case "/dev/stdout":
			w = cfg.writerFor(os.Stdout)
		case "/dev/stderr":
			w = cfg.writerFor(os.Stderr)
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			w = cfg.writerFor(file)
		}

		writers = append(writers, w)
	}

	log.Logger = audit.WithRunID(log.Output(zerolog.MultiLevelWriter(writers...)))
}

func (cfg *Config) writerFor(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// pretty print span logs
			if sys, ok := m["sys"]; ok && sys == string(audit.OpValidate) {
				m["message"] = fmt.Sprintf("[%s] %v entries, %v flawed, %s", m["detail"], m["entries"], m["flawed"], m["path"])
				delete(m, "sys")
				delete(m, "detail")
				delete(m, "entries")
				delete(m, "flawed")
				delete(m, "path")
				delete(m, "run")
			}

			return nil
		}
	}

	return w
}
