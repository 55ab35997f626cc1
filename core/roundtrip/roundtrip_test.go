// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package roundtrip

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/marker"
	"codeberg.org/pixivfe/pocheck/i18n"
)

const samplePOT = `msgid ""
msgstr ""
"Project-Id-Version: ipa\n"
"Content-Type: text/plain; charset=UTF-8\n"

#: ipalib/plugins/user.py:10
msgid "%(uid)s logged in"
msgstr ""

#: ipalib/plugins/user.py:20
msgctxt "menu"
msgid "Open"
msgstr ""

#: ipalib/plugins/host.py:5
msgid "%(count)d host"
msgid_plural "%(count)d hosts"
msgstr[0] ""
msgstr[1] ""

msgid "ünïcödé ${thing}"
msgstr ""
`

func setup(t *testing.T) (Paths, string) {
	t.Helper()

	dir := t.TempDir()
	localeDir := filepath.Join(dir, "test_locale")

	pot := filepath.Join(dir, "ipa.pot")
	require.NoError(t, os.WriteFile(pot, []byte(samplePOT), 0o600))

	p := NewPaths(pot, filepath.Join(dir, "test"), localeDir, "xh_ZA", "ipa")

	return p, localeDir
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	template, err := catalog.Parse("ipa.pot", []byte(samplePOT))
	require.NoError(t, err)

	cat, err := Synthesize(template, "xh_ZA")
	require.NoError(t, err)

	forms, ok := cat.Header.Get("Plural-Forms")
	assert.True(t, ok)
	assert.Equal(t, catalog.DefaultPluralForms, forms)

	lang, _ := cat.Header.Get("Language")
	assert.Equal(t, "xh_ZA", lang)

	require.Len(t, cat.Entries, 4)
	assert.Equal(t, "→%(uid)s logged in←", cat.Entries[0].Translation)
	assert.Equal(t, "menu", cat.Entries[1].Context)
	assert.Equal(t, []string{"→%(count)d host←", "→%(count)d hosts←"}, cat.Entries[2].PluralTranslationList())
	assert.Empty(t, cat.Entries[2].Translation)

	// The template is left untouched.
	assert.Empty(t, template.Entries[0].Translation)
	_, ok = template.Header.Get("Plural-Forms")
	assert.False(t, ok)
}

func TestNewPaths(t *testing.T) {
	t.Parallel()

	p := NewPaths("ipa.pot", "test", "test_locale", "xh_ZA", "ipa")

	assert.Equal(t, "ipa.pot", p.PotFile)
	assert.Equal(t, "test.po", p.PoFile)
	assert.Equal(t, filepath.Join("test_locale", "xh_ZA", "LC_MESSAGES", "ipa.mo"), p.MoFile)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	p, localeDir := setup(t)

	synthetic, err := CreateTest(context.Background(), p, "xh_ZA")
	require.NoError(t, err)
	assert.FileExists(t, p.PoFile)
	assert.FileExists(t, p.MoFile)

	// The written .po reads back as the synthetic catalog.
	written, err := catalog.Load(p.PoFile)
	require.NoError(t, err)
	assert.Equal(t, synthetic.Entries, written.Entries)

	rt, err := i18n.Open(localeDir, "xh_ZA", "ipa")
	require.NoError(t, err)

	var logs bytes.Buffer

	res, err := Test(context.Background(), written, rt, zerolog.New(&logs), true)
	require.NoError(t, err)

	assert.Equal(t, &Result{Messages: 4, Translations: 5, Valid: 5}, res)
	assert.Contains(t, logs.String(), "Translation verified")
}

func TestRoundTripTamperedCatalog(t *testing.T) {
	t.Parallel()

	p, localeDir := setup(t)

	synthetic, err := CreateTest(context.Background(), p, "xh_ZA")
	require.NoError(t, err)

	// Truncate one translation and drop another, then recompile.
	synthetic.Entries[0].Translation = "→%(uid)s logged←"
	synthetic.Entries[1].Translation = ""
	require.NoError(t, catalog.WriteMOFile(p.MoFile, synthetic))

	rt, err := i18n.Open(localeDir, "xh_ZA", "ipa")
	require.NoError(t, err)

	template, err := catalog.Load(p.PotFile)
	require.NoError(t, err)

	var logs bytes.Buffer

	res, err := Test(context.Background(), template, rt, zerolog.New(&logs), false)
	require.ErrorIs(t, err, ErrFailures)
	assert.EqualError(t, err, "round-trip failures: 2 failures out of 5 translations")

	assert.Equal(t, &Result{Messages: 4, Translations: 5, Valid: 3, Failed: 2}, res)
	assert.Contains(t, logs.String(), marker.ContentMismatch.String())
	assert.Contains(t, logs.String(), marker.PrefixMismatch.String())
	assert.NotContains(t, logs.String(), "Translation verified")
}

func TestRoundTripEmpty(t *testing.T) {
	t.Parallel()

	res, err := Test(context.Background(), &catalog.Catalog{Path: "empty.po"}, nil, zerolog.Nop(), false)
	require.ErrorIs(t, err, errNoTranslations)
	assert.Equal(t, 0, res.Messages)
}

func TestCreateTestMissingTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := CreateTest(context.Background(), NewPaths(filepath.Join(dir, "nope.pot"), filepath.Join(dir, "test"),
		dir, "xh_ZA", "ipa"), "xh_ZA")

	var inputErr *catalog.InputError
	assert.ErrorAs(t, err, &inputErr)
}
