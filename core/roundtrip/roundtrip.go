// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package roundtrip tests a gettext lookup pipeline end to end.

CreateTest turns a template into a synthetic catalog whose every msgstr is
the msgid wrapped with the marker characters, and installs it as a .po and
a compiled .mo. Test then looks every message up through a runtime and
verifies that each result is exactly the expected wrapping.
*/
package roundtrip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocheck/core/audit"
	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/marker"
	"codeberg.org/pixivfe/pocheck/i18n"
)

const msgDirPermissions = 0o755

var (
	errNoTranslations = errors.New("no translations found")
	// ErrFailures is returned by Test when at least one translation failed.
	ErrFailures = errors.New("round-trip failures")
)

// Lookuper resolves messages. *i18n.Runtime implements it.
type Lookuper interface {
	Lookup(m i18n.Message) (string, bool)
}

// Synthesize returns a copy of template in which every entry is translated
// to its marker wrapping. Plural entries get two forms, one per plural of
// DefaultPluralForms.
func Synthesize(template *catalog.Catalog, lang string) (*catalog.Catalog, error) {
	out := &catalog.Catalog{
		Format:   catalog.FormatPO,
		Language: lang,
		Header:   append(catalog.Header(nil), template.Header...),
		Entries:  make([]*catalog.Entry, 0, len(template.Entries)),
	}

	out.Header.Set("Language", lang)
	out.Header.Set("Content-Type", "text/plain; charset=UTF-8")
	out.Header.Set("Content-Transfer-Encoding", "8bit")

	if err := catalog.NormalizePluralForms(out); err != nil {
		return nil, err
	}

	for _, e := range template.Entries {
		synthetic := &catalog.Entry{
			Context:     e.Context,
			ID:          e.ID,
			PluralID:    e.PluralID,
			Occurrences: e.Occurrences,
		}

		singular, plural := marker.EncodePlural(e.ID, e.PluralID)
		if e.HasPlural() {
			synthetic.PluralTranslations = map[int]string{0: singular, 1: plural}
		} else {
			synthetic.Translation = singular
		}

		out.Entries = append(out.Entries, synthetic)
	}

	return out, nil
}

// Paths locates the files written by CreateTest.
type Paths struct {
	PotFile string
	PoFile  string
	MoFile  string
}

// NewPaths derives the conventional locations: "<testLang>.po" in the
// working directory and "<localeDir>/<lang>/LC_MESSAGES/<domain>.mo".
func NewPaths(potFile, testLang, localeDir, lang, domain string) Paths {
	return Paths{
		PotFile: potFile,
		PoFile:  testLang + ".po",
		MoFile:  filepath.Join(i18n.MessagesDir(localeDir, lang), domain+".mo"),
	}
}

// CreateTest reads the template at p.PotFile and writes the synthetic
// catalog to p.PoFile and p.MoFile. It returns the synthetic catalog.
func CreateTest(ctx context.Context, p Paths, lang string) (*catalog.Catalog, error) {
	template, err := catalog.Load(p.PotFile)
	if err != nil {
		return nil, err
	}

	synthetic, err := Synthesize(template, lang)
	if err != nil {
		return nil, err
	}

	span := audit.Span{Operation: audit.OpWrite, Path: p.PoFile, Entries: len(synthetic.Entries)}
	span.Begin(ctx)

	err = writeFiles(p, synthetic)
	span.Error = err

	span.End()
	span.Log()

	if err != nil {
		return nil, err
	}

	return synthetic, nil
}

func writeFiles(p Paths, synthetic *catalog.Catalog) error {
	if err := catalog.WritePOFile(p.PoFile, synthetic); err != nil {
		return err
	}

	log.Info().Str("file", p.PoFile).Msg("Wrote")

	if err := os.MkdirAll(filepath.Dir(p.MoFile), msgDirPermissions); err != nil {
		return fmt.Errorf("failed to create message directory: %w", err)
	}

	if err := catalog.WriteMOFile(p.MoFile, synthetic); err != nil {
		return err
	}

	log.Info().Str("file", p.MoFile).Msg("Wrote")

	return nil
}

// Result counts the outcome of a round-trip test.
type Result struct {
	// Messages is the number of catalog entries tested.
	Messages int
	// Translations is the number of lookups verified: one per singular
	// entry, two per plural entry.
	Translations int
	Valid        int
	Failed       int
}

// Test looks up every entry of cat through rt and verifies the results.
//
// Failures are logged and counted without stopping the run. Test returns
// ErrFailures when any translation failed and an error when cat has no
// entries.
func Test(ctx context.Context, cat *catalog.Catalog, rt Lookuper, logger zerolog.Logger, verbose bool) (*Result, error) {
	span := audit.Span{Operation: audit.OpRoundTrip, Path: cat.Path, Entries: len(cat.Entries)}
	span.Begin(ctx)

	defer span.Log()
	defer span.End()

	res := &Result{}

	check := func(original string, m i18n.Message) {
		res.Translations++

		candidate, _ := rt.Lookup(m)

		if err := marker.Verify(original, candidate); err != nil {
			res.Failed++

			var mismatch *marker.MismatchError
			if errors.As(err, &mismatch) {
				logger.Error().
					Str("reason", mismatch.Reason.String()).
					Str("msgid", original).
					Str("msgstr", candidate).
					Msg(err.Error())
			}

			return
		}

		res.Valid++

		if verbose {
			logger.Info().Str("msgid", original).Str("msgstr", candidate).Msg("Translation verified")
		}
	}

	for _, e := range cat.Entries {
		if e.HasPlural() {
			check(e.ID, i18n.Message{Context: e.Context, ID: e.ID, PluralID: e.PluralID, N: 1})
			check(e.PluralID, i18n.Message{Context: e.Context, ID: e.ID, PluralID: e.PluralID, N: 2})
		} else {
			check(e.ID, i18n.Message{Context: e.Context, ID: e.ID})
		}

		res.Messages++
	}

	span.Flawed = res.Failed

	if res.Messages == 0 {
		span.Error = errNoTranslations

		return res, fmt.Errorf("%w in %s", errNoTranslations, cat.Path)
	}

	if res.Failed > 0 {
		span.Error = ErrFailures

		return res, fmt.Errorf("%w: %d failures out of %d translations", ErrFailures, res.Failed, res.Translations)
	}

	return res, nil
}
