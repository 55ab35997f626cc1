// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package validate

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/substitution"
)

const pageWidth = 80

var (
	sectionSeparator = strings.Repeat("=", pageWidth)
	entrySeparator   = strings.Repeat("-", pageWidth)
)

// Renderer writes plain-text reports.
type Renderer struct {
	// Color enables coloured headers and diagnostic messages.
	Color bool

	header  *color.Color
	message *color.Color
	banner  *color.Color
}

// NewRenderer returns a Renderer, colouring output when useColor is set.
func NewRenderer(useColor bool) *Renderer {
	r := &Renderer{
		Color:   useColor,
		header:  color.New(color.FgRed, color.Bold),
		message: color.New(color.FgYellow),
		banner:  color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{r.header, r.message, r.banner} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// File writes the report of one file. Nothing is written for a file
// without flawed entries.
func (r *Renderer) File(w io.Writer, report *FileReport) error {
	if report.Flawed() == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, sectionSeparator)
	fmt.Fprintln(bw, r.header.Sprintf("%d validation errors in %s", report.Flawed(), report.Path))

	for _, entry := range report.Reports {
		fmt.Fprintln(bw, entrySeparator)
		fmt.Fprintln(bw, "locations: "+joinOccurrences(entry.Occurrences))

		r.diagnostics(bw, entry.Diagnostics)
	}

	return bw.Flush()
}

// diagnostics writes messages, followed by the shared excerpts after each
// run of consecutive diagnostics that carry the same excerpts.
func (r *Renderer) diagnostics(w io.Writer, diags []substitution.Diagnostic) {
	for i, d := range diags {
		fmt.Fprintln(w, r.message.Sprint(d.Message))

		if len(d.Excerpts) == 0 {
			continue
		}

		if i+1 < len(diags) && slices.Equal(d.Excerpts, diags[i+1].Excerpts) {
			continue
		}

		for _, excerpt := range d.Excerpts {
			lines := excerpt.Lines()
			fmt.Fprintln(w, r.banner.Sprint(lines[0]))
			fmt.Fprintln(w, lines[1])
		}
	}
}

// Batch writes the report of every file that loaded, in order, then the
// summary line when the run is not clean.
func (r *Renderer) Batch(w io.Writer, batch *Batch) error {
	for _, result := range batch.Results {
		if result.Report == nil {
			continue
		}

		if err := r.File(w, result.Report); err != nil {
			return err
		}
	}

	total := batch.Total()
	if total == 0 {
		return nil
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", sectionSeparator,
		r.header.Sprintf("%d errors in %d files", total, len(batch.Results)))

	return err
}

func joinOccurrences(occurrences []catalog.Occurrence) string {
	parts := make([]string, len(occurrences))
	for i, o := range occurrences {
		parts[i] = o.String()
	}

	return strings.Join(parts, ", ")
}
