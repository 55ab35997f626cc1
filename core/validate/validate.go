// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package validate runs the substitution checks over whole catalogs.

A catalog is checked in one of two modes. ModeTemplate checks the msgid of
every entry of an untranslated template for ambiguous anonymous
placeholders. ModeTranslated compares each msgid with its msgstr. In both
modes Options.Pedantic adds the placeholder syntax check on each non-blank
side.

The unit of failure is the flawed entry, an entry with at least one
diagnostic, not the diagnostic itself.
*/
package validate

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/substitution"
)

// Mode selects which checks run on an entry.
type Mode int

const (
	// ModeTemplate checks untranslated templates (.pot).
	ModeTemplate Mode = iota
	// ModeTranslated checks translated catalogs (.po).
	ModeTranslated
)

func (m Mode) String() string {
	switch m {
	case ModeTemplate:
		return "pot"
	case ModeTranslated:
		return "po"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// EntryReport holds the diagnostics of one flawed entry.
type EntryReport struct {
	Occurrences []catalog.Occurrence
	Diagnostics []substitution.Diagnostic
}

// FileReport is the result of checking one catalog.
type FileReport struct {
	Path string
	// Entries is the number of entries checked.
	Entries int
	// Reports holds one report per flawed entry, in catalog order.
	Reports []EntryReport
}

// Flawed returns the number of entries with at least one diagnostic.
func (r *FileReport) Flawed() int {
	return len(r.Reports)
}

// Entry runs the checks selected by mode on e.
func Entry(e *catalog.Entry, mode Mode, opts substitution.Options) []substitution.Diagnostic {
	var (
		diags     []substitution.Diagnostic
		haveID    = !isBlank(e.ID)
		haveTrans = !isBlank(e.Translation)
	)

	switch mode {
	case ModeTemplate:
		if haveID {
			diags = append(diags, substitution.GuardAnonymous(e.ID, substitution.LabelMsgid, opts)...)
		}
	case ModeTranslated:
		if haveID && haveTrans {
			diags = append(diags, substitution.Compare(e.ID, e.Translation,
				substitution.LabelMsgid, substitution.LabelMsgstr, opts)...)
		}
	}

	if opts.Pedantic {
		if haveID {
			diags = append(diags, substitution.ValidateSyntax(e.ID, substitution.LabelMsgid, opts)...)
		}

		if haveTrans {
			diags = append(diags, substitution.ValidateSyntax(e.Translation, substitution.LabelMsgstr, opts)...)
		}
	}

	return diags
}

// Catalog checks every entry of cat.
func Catalog(cat *catalog.Catalog, mode Mode, opts substitution.Options) *FileReport {
	report := &FileReport{Path: cat.Path, Entries: len(cat.Entries)}

	for _, e := range cat.Entries {
		if mode == ModeTranslated && e.HasPlural() {
			log.Debug().
				Str("sys", "validate").
				Str("file", cat.Path).
				Str("msgid", e.ID).
				Msg("Plural translations are not compared")
		}

		diags := Entry(e, mode, opts)
		if len(diags) == 0 {
			continue
		}

		report.Reports = append(report.Reports, EntryReport{
			Occurrences: e.Occurrences,
			Diagnostics: diags,
		})
	}

	return report
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
