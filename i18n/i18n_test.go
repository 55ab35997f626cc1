// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pocheck/core/catalog"
)

func writeLocale(t *testing.T, lang, domain string) string {
	t.Helper()

	dir := t.TempDir()
	msgDir := MessagesDir(dir, lang)
	require.NoError(t, os.MkdirAll(msgDir, 0o755))

	cat := &catalog.Catalog{
		Header: catalog.Header{
			{Key: "Content-Type", Value: "text/plain; charset=UTF-8"},
			{Key: "Plural-Forms", Value: catalog.DefaultPluralForms},
		},
		Entries: []*catalog.Entry{
			{ID: "Hello %(name)s", Translation: "Sawubona %(name)s"},
			{ID: "%d%% done", Translation: "%d%% kwenziwe"},
			{Context: "menu", ID: "Open", Translation: "Vula"},
			{ID: "%(n)d file", PluralID: "%(n)d files", PluralTranslations: map[int]string{0: "ifayile", 1: "iifayile"}},
			{Context: "count", ID: "item", PluralID: "items", PluralTranslations: map[int]string{0: "into", 1: "izinto"}},
		},
	}

	require.NoError(t, catalog.WriteMOFile(filepath.Join(msgDir, domain+".mo"), cat))

	return dir
}

func TestLookup(t *testing.T) {
	t.Parallel()

	dir := writeLocale(t, "xh_ZA", "ipa")

	rt, err := Open(dir, "xh_ZA", "ipa")
	require.NoError(t, err)

	assert.Equal(t, "xh-ZA", rt.Tag().String())
	assert.Equal(t, filepath.Join(dir, "xh_ZA", "LC_MESSAGES", "ipa.mo"), rt.File())

	tests := []struct {
		name  string
		msg   Message
		want  string
		found bool
	}{
		{name: "simple", msg: Message{ID: "Hello %(name)s"}, want: "Sawubona %(name)s", found: true},
		{name: "context", msg: Message{Context: "menu", ID: "Open"}, want: "Vula", found: true},
		{name: "printf verbs kept", msg: Message{ID: "%d%% done"}, want: "%d%% kwenziwe", found: true},
		{name: "context required", msg: Message{ID: "Open"}, want: "Open"},
		{name: "plural singular", msg: Message{ID: "%(n)d file", PluralID: "%(n)d files", N: 1}, want: "ifayile", found: true},
		{name: "plural plural", msg: Message{ID: "%(n)d file", PluralID: "%(n)d files", N: 2}, want: "iifayile", found: true},
		{name: "plural with context", msg: Message{Context: "count", ID: "item", PluralID: "items", N: 5}, want: "izinto", found: true},
		{name: "missing", msg: Message{ID: "Goodbye"}, want: "Goodbye"},
		{name: "missing plural", msg: Message{ID: "a", PluralID: "as", N: 3}, want: "as"},
	}

	for _, tt := range tests {
		got, found := rt.Lookup(tt.msg)
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.found, found, tt.name)
	}
}

// A singular entry has only form 0, while n=0 selects form 1 under the
// default rule; singular lookups must still find it.
func TestLookupSingularUnderPluralRule(t *testing.T) {
	t.Parallel()

	dir := writeLocale(t, "xh_ZA", "ipa")

	rt, err := Open(dir, "xh_ZA", "ipa")
	require.NoError(t, err)

	got, found := rt.Lookup(Message{ID: "Hello %(name)s"})
	assert.True(t, found)
	assert.Equal(t, "Sawubona %(name)s", got)

	got, found = rt.Lookup(Message{Context: "menu", ID: "Open"})
	assert.True(t, found)
	assert.Equal(t, "Vula", got)
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	dir := writeLocale(t, "xh_ZA", "ipa")

	_, err := Open(dir, "not a locale!", "ipa")
	assert.Error(t, err)

	_, err = Open(dir, "xh_ZA", "../ipa")
	assert.ErrorIs(t, err, errInvalidDomain)

	_, err = Open(dir, "xh_ZA", "other")
	assert.ErrorIs(t, err, errNoCatalog)

	_, err = Open(dir, "de_DE", "ipa")
	assert.ErrorIs(t, err, errNoCatalog)
}

func TestParseLang(t *testing.T) {
	t.Parallel()

	for lang, want := range map[string]string{
		"xh_ZA":       "xh-ZA",
		"pt-BR":       "pt-BR",
		"de_DE.UTF-8": "de-DE",
	} {
		tag, err := ParseLang(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, want, tag.String(), lang)
	}
}
