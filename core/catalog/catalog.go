// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog reads and writes translation catalogs.

Supported inputs are GNU gettext templates and catalogs (.pot, .po) and
x/text gotext.json files, each optionally compressed with gzip (.gz) or
zstd (.zst). Entries are kept in file order so that reports derived from a
catalog are stable across runs.

Writing is limited to what the round-trip test needs: a .po file and its
compiled .mo counterpart.
*/
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Format identifies the on-disk format of a catalog.
type Format int

const (
	FormatPO Format = iota
	FormatGotextJSON
)

func (f Format) String() string {
	switch f {
	case FormatPO:
		return "po"
	case FormatGotextJSON:
		return "gotext.json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Occurrence is a source location referencing an entry.
type Occurrence struct {
	File string
	Line int
}

func (o Occurrence) String() string {
	if o.Line == 0 {
		return o.File
	}

	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// Entry is one translatable message.
type Entry struct {
	// Context is the msgctxt disambiguating otherwise identical msgids.
	Context  string
	ID       string
	PluralID string
	// Translation is the msgstr of a non-plural entry.
	Translation string
	// PluralTranslations holds msgstr[n] of a plural entry, keyed by n.
	PluralTranslations map[int]string
	Occurrences        []Occurrence
	Flags              []string
}

// HasPlural reports whether e has a distinct plural form.
func (e *Entry) HasPlural() bool {
	return e.PluralID != ""
}

// HasFlag reports whether e carries flag, e.g. "fuzzy".
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}

	return false
}

// PluralTranslationList returns the plural translations ordered by index,
// filling gaps with empty strings.
func (e *Entry) PluralTranslationList() []string {
	maxIndex := -1
	for i := range e.PluralTranslations {
		if i > maxIndex {
			maxIndex = i
		}
	}

	out := make([]string, maxIndex+1)
	for i, s := range e.PluralTranslations {
		out[i] = s
	}

	return out
}

// HeaderField is one "Key: Value" line of a catalog header.
type HeaderField struct {
	Key   string
	Value string
}

// Header is the ordered metadata of a catalog, stored in the msgstr of the
// entry with an empty msgid. Keys compare case-insensitively.
type Header []HeaderField

// Get returns the value for key.
func (h Header) Get(key string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}

	return "", false
}

// Set replaces the value for key in place, or appends the field if absent.
func (h *Header) Set(key, value string) {
	for i, f := range *h {
		if strings.EqualFold(f.Key, key) {
			(*h)[i].Value = value

			return
		}
	}

	*h = append(*h, HeaderField{Key: key, Value: value})
}

// String renders the header as the msgstr of the header entry.
func (h Header) String() string {
	var b strings.Builder
	for _, f := range h {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	return b.String()
}

func parseHeader(s string) Header {
	var h Header

	for _, line := range strings.Split(s, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		h = append(h, HeaderField{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}

	return h
}

// Catalog is an ordered collection of entries read from one file.
type Catalog struct {
	Path     string
	Format   Format
	Language string
	Header   Header
	Entries  []*Entry
}

// parseReference parses "file:line" or "file:line:column" into an Occurrence.
// References without a numeric line keep the whole text as the file.
func parseReference(ref string) Occurrence {
	file, tail, ok := cutLastNumber(ref)
	if !ok {
		return Occurrence{File: ref}
	}

	if prefix, line, ok := cutLastNumber(file); ok {
		return Occurrence{File: prefix, Line: line}
	}

	return Occurrence{File: file, Line: tail}
}

func cutLastNumber(s string) (string, int, bool) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return s, 0, false
	}

	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 0 {
		return s, 0, false
	}

	return s[:i], n, true
}
