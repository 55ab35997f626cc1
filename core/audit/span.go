// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents one unit of catalog work in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Operation Operation
	Path      string
	// Detail is a free-form qualifier, e.g. the validation mode.
	Detail  string
	Size    int
	Entries int
	Flawed  int
	Error   error
}

// Operation names the kind of work a span covers.
type Operation string

// Constants for span operations.
const (
	OpValidate  Operation = "validate"
	OpWrite     Operation = "write"
	OpRoundTrip Operation = "roundtrip"
)

// Begin starts the span and its runtime/trace task.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "pocheck."+string(span.Operation))

	return ctx
}

// End records the duration. Only the first call has an effect.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()
		span.task = nil
	}
}

// Duration returns the time between Begin and End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

func (span *Span) Log() {
	event := log.Debug()

	event.Str("sys", string(span.Operation))
	event.Str("path", span.Path)

	if span.Detail != "" {
		event.Str("detail", span.Detail)
	}

	if span.Size > 0 {
		event.Str("len", humanizeSize(span.Size))
	}

	event.Int("entries", span.Entries)
	event.Int("flawed", span.Flawed)
	event.Dur("dur", span.duration)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
