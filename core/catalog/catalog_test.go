// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePO = `# Translations for the sample project.
msgid ""
msgstr ""
"Project-Id-Version: sample\n"
"Language: de\n"
"Content-Type: text/plain; charset=UTF-8\n"

#: views/index.jet.html:12 views/index.jet.html:40
msgid "Hello %(name)s"
msgstr "Hallo %(name)s"

#: core/user.go:7:3
#, fuzzy, python-format
msgctxt "menu"
msgid "Open"
msgstr "Öffnen"

#: core/list.go:99
msgid "%(n)d file"
msgid_plural "%(n)d files"
msgstr[0] "%(n)d Datei"
msgstr[1] "%(n)d Dateien"

msgid ""
"first line\n"
"second line"
msgstr "erste \"Zeile\""

#~ msgid "Gone"
#~ msgstr "Weg"

#~ msgid "Also gone"
#~ msgstr "Auch weg"
`

func TestParsePO(t *testing.T) {
	t.Parallel()

	cat, err := Parse("sample.po", []byte(samplePO))
	require.NoError(t, err)

	assert.Equal(t, FormatPO, cat.Format)
	assert.Equal(t, "de", cat.Language)

	version, ok := cat.Header.Get("project-id-version")
	assert.True(t, ok)
	assert.Equal(t, "sample", version)

	require.Len(t, cat.Entries, 4)

	hello := cat.Entries[0]
	assert.Equal(t, "Hello %(name)s", hello.ID)
	assert.Equal(t, "Hallo %(name)s", hello.Translation)
	assert.Equal(t, []Occurrence{
		{File: "views/index.jet.html", Line: 12},
		{File: "views/index.jet.html", Line: 40},
	}, hello.Occurrences)

	open := cat.Entries[1]
	assert.Equal(t, "menu", open.Context)
	assert.Equal(t, "Öffnen", open.Translation)
	assert.Equal(t, []Occurrence{{File: "core/user.go", Line: 7}}, open.Occurrences)
	assert.True(t, open.HasFlag("fuzzy"))
	assert.True(t, open.HasFlag("python-format"))
	assert.False(t, open.HasFlag("c-format"))

	files := cat.Entries[2]
	assert.True(t, files.HasPlural())
	assert.Equal(t, "%(n)d files", files.PluralID)
	assert.Empty(t, files.Translation)
	assert.Equal(t, []string{"%(n)d Datei", "%(n)d Dateien"}, files.PluralTranslationList())

	multi := cat.Entries[3]
	assert.Equal(t, "first line\nsecond line", multi.ID)
	assert.Equal(t, `erste "Zeile"`, multi.Translation)
	assert.Empty(t, multi.Occurrences)
}

func TestParsePOErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "missing msgstr", data: "msgid \"a\"\n\nmsgid \"b\"\nmsgstr \"c\"\n"},
		{name: "unknown keyword", data: "msgid \"a\"\nmsgfoo \"b\"\n"},
		{name: "unterminated string", data: "msgid \"a\nmsgstr \"b\"\n"},
		{name: "orphan continuation", data: "\"dangling\"\n"},
		{name: "plural index without msgid_plural", data: "msgid \"a\"\nmsgstr[0] \"b\"\n"},
		{name: "invalid utf-8", data: "msgid \"\xff\"\nmsgstr \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("broken.po", []byte(tt.data))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want Occurrence
	}{
		{ref: "main.go:10", want: Occurrence{File: "main.go", Line: 10}},
		{ref: "main.go:10:4", want: Occurrence{File: "main.go", Line: 10}},
		{ref: "main.go", want: Occurrence{File: "main.go"}},
		{ref: "C:/src/main.go:3", want: Occurrence{File: "C:/src/main.go", Line: 3}},
		{ref: "views/a.html:x", want: Occurrence{File: "views/a.html:x"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseReference(tt.ref), tt.ref)
	}

	assert.Equal(t, "main.go", Occurrence{File: "main.go"}.String())
	assert.Equal(t, "main.go:3", Occurrence{File: "main.go", Line: 3}.String())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	plain := filepath.Join(dir, "de.po")
	require.NoError(t, os.WriteFile(plain, []byte(samplePO), 0o600))

	var gz bytes.Buffer

	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(samplePO))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	gzPath := filepath.Join(dir, "de.po.gz")
	require.NoError(t, os.WriteFile(gzPath, gz.Bytes(), 0o600))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	zstPath := filepath.Join(dir, "de.po.zst")
	require.NoError(t, os.WriteFile(zstPath, enc.EncodeAll([]byte(samplePO), nil), 0o600))
	require.NoError(t, enc.Close())

	for _, path := range []string{plain, gzPath, zstPath} {
		cat, err := Load(path)
		require.NoError(t, err, path)

		assert.Equal(t, path, cat.Path)
		assert.Len(t, cat.Entries, 4, path)
		assert.Equal(t, "Hello %(name)s", cat.Entries[0].ID, path)
	}
}

func TestLoadInputErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.po")

	_, err := Load(missing)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, missing, inputErr.Path)
	assert.ErrorIs(t, err, ErrNotExist)
	assert.Equal(t, `file does not exist "`+missing+`"`, err.Error())

	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrNotExist)

	broken := filepath.Join(dir, "broken.po")
	require.NoError(t, os.WriteFile(broken, []byte("msgid \"a\"\nmsgfoo \"b\"\n"), 0o600))

	_, err = Load(broken)
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), `unable to parse file "`+broken+`"`)

	badGzip := filepath.Join(dir, "bad.po.gz")
	require.NoError(t, os.WriteFile(badGzip, []byte("not gzip"), 0o600))

	_, err = Load(badGzip)
	assert.ErrorIs(t, err, ErrRead)
}

func TestParseGotextJSON(t *testing.T) {
	t.Parallel()

	const data = `{
		"language": "fr",
		"messages": [
			{"id": "Hello {Name}", "message": "Hello %(name)s", "translation": "Bonjour %(name)s", "position": "main.go:12:2"},
			{"id": ["Open", "open-menu"], "translation": "Ouvrir", "fuzzy": true},
			{"id": "%d items", "translation": {"select": {"feature": "plural"}}},
			{"id": "", "translation": "skipped"}
		]
	}`

	cat, err := Parse("messages.gotext.json", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, FormatGotextJSON, cat.Format)
	assert.Equal(t, "fr", cat.Language)
	require.Len(t, cat.Entries, 3)

	assert.Equal(t, "Hello %(name)s", cat.Entries[0].ID)
	assert.Equal(t, "Bonjour %(name)s", cat.Entries[0].Translation)
	assert.Equal(t, []Occurrence{{File: "main.go", Line: 12}}, cat.Entries[0].Occurrences)

	assert.Equal(t, "Open", cat.Entries[1].ID)
	assert.True(t, cat.Entries[1].HasFlag("fuzzy"))

	assert.Equal(t, "%d items", cat.Entries[2].ID)
	assert.Empty(t, cat.Entries[2].Translation)

	for _, bad := range []string{`{"messages": {}}`, `{"messages": [1]}`, `not json`} {
		_, err := Parse("bad.gotext.json", []byte(bad))
		assert.ErrorIs(t, err, ErrParse, bad)
	}
}

func TestWritePORoundTrip(t *testing.T) {
	t.Parallel()

	cat, err := Parse("sample.po", []byte(samplePO))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePO(&buf, cat))

	assert.Contains(t, buf.String(), "#: views/index.jet.html:12 views/index.jet.html:40\n")
	assert.Contains(t, buf.String(), "#, fuzzy, python-format\nmsgctxt \"menu\"\n")
	assert.Contains(t, buf.String(), "msgid \"\"\n\"first line\\n\"\n\"second line\"\n")

	again, err := Parse("again.po", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, cat.Header, again.Header)
	assert.Equal(t, cat.Entries, again.Entries)
}

func TestWriteMO(t *testing.T) {
	t.Parallel()

	cat := &Catalog{
		Header: Header{{Key: "Content-Type", Value: "text/plain; charset=UTF-8"}},
		Entries: []*Entry{
			{ID: "b", Translation: "B"},
			{ID: "a", Context: "ctx", Translation: "A"},
			{ID: "n", PluralID: "ns", PluralTranslations: map[int]string{0: "N", 1: "NS"}},
			{ID: "untranslated"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMO(&buf, cat))

	data := buf.Bytes()
	word := func(off uint32) uint32 { return binary.LittleEndian.Uint32(data[off:]) }

	require.Equal(t, uint32(moMagic), word(0))
	assert.Equal(t, uint32(0), word(4))

	n := word(8)
	require.Equal(t, uint32(4), n)

	origTable, transTable := word(12), word(16)
	str := func(table, i uint32) string {
		length, offset := word(table+8*i), word(table+8*i+4)
		assert.Equal(t, byte(0), data[offset+length], "string %d is NUL terminated", i)

		return string(data[offset : offset+length])
	}

	keys := make([]string, n)
	values := make([]string, n)

	for i := range n {
		keys[i] = str(origTable, i)
		values[i] = str(transTable, i)
	}

	assert.Equal(t, []string{"", "b", "ctx\x04a", "n\x00ns"}, keys)
	assert.Equal(t, []string{"Content-Type: text/plain; charset=UTF-8\n", "B", "A", "N\x00NS"}, values)
}

func TestPluralForms(t *testing.T) {
	t.Parallel()

	forms, err := CompilePluralForms(DefaultPluralForms)
	require.NoError(t, err)
	assert.Equal(t, 2, forms.N)
	assert.Equal(t, 0, forms.Index(1))
	assert.Equal(t, 1, forms.Index(2))
	assert.Equal(t, 1, forms.Index(0))

	for _, bad := range []string{"", "plural=(n != 1);", "nplurals=x; plural=(n != 1);", "nplurals=2;"} {
		_, err := CompilePluralForms(bad)
		assert.ErrorIs(t, err, errInvalidPluralForms, bad)
	}

	cat := &Catalog{}
	require.NoError(t, NormalizePluralForms(cat))

	value, ok := cat.Header.Get("Plural-Forms")
	assert.True(t, ok)
	assert.Equal(t, DefaultPluralForms, value)

	cat.Header.Set("plural-forms", "nplurals=1; plural=0;")
	require.NoError(t, NormalizePluralForms(cat))
	assert.Len(t, cat.Header, 1)
	value, _ = cat.Header.Get("Plural-Forms")
	assert.Equal(t, DefaultPluralForms, value)
}
