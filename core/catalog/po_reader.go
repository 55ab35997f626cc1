// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// field is the part of an entry a string continuation line appends to.
type field int

const (
	fieldNone field = iota
	fieldContext
	fieldID
	fieldPluralID
	fieldTranslation
	fieldPluralTranslation
)

// poParser reads PO entries in file order. Obsolete (#~) entries and
// previous-msgid (#|) comments are consumed but not kept.
type poParser struct {
	cat  *Catalog
	line int

	cur         *Entry
	obsolete    bool
	last        field
	pluralIndex int
	headerSeen  bool
}

func parsePO(data []byte) (*Catalog, error) {
	p := &poParser{cat: &Catalog{Format: FormatPO}}
	p.reset()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		p.line++

		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, p.line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := p.flush(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrParse, p.line, err)
	}

	if lang, ok := p.cat.Header.Get("Language"); ok {
		p.cat.Language = lang
	}

	return p.cat, nil
}

func (p *poParser) reset() {
	p.cur = &Entry{}
	p.obsolete = false
	p.last = fieldNone
}

// inTranslation reports whether the current entry has reached its msgstr.
func (p *poParser) inTranslation() bool {
	return p.last == fieldTranslation || p.last == fieldPluralTranslation
}

func (p *poParser) parseLine(line string) error {
	switch {
	case line == "":
		if p.last != fieldNone {
			return p.flush()
		}

		return nil

	case strings.HasPrefix(line, "#~"):
		rest := strings.TrimSpace(line[2:])
		if strings.HasPrefix(rest, "|") {
			return nil
		}

		if p.inTranslation() && (!p.obsolete || startsEntry(rest)) {
			if err := p.flush(); err != nil {
				return err
			}
		}

		p.obsolete = true

		return p.parseKeywordOrString(rest)

	case strings.HasPrefix(line, "#"):
		if p.inTranslation() {
			if err := p.flush(); err != nil {
				return err
			}
		}

		p.parseComment(line)

		return nil
	}

	if p.inTranslation() && startsEntry(line) {
		if err := p.flush(); err != nil {
			return err
		}
	}

	return p.parseKeywordOrString(line)
}

// startsEntry reports whether line opens a new entry.
func startsEntry(line string) bool {
	return strings.HasPrefix(line, "msgid") || strings.HasPrefix(line, "msgctxt")
}

func (p *poParser) parseComment(line string) {
	switch {
	case strings.HasPrefix(line, "#:"):
		for _, ref := range strings.Fields(line[2:]) {
			p.cur.Occurrences = append(p.cur.Occurrences, parseReference(ref))
		}
	case strings.HasPrefix(line, "#,"):
		for _, flag := range strings.Split(line[2:], ",") {
			if flag = strings.TrimSpace(flag); flag != "" {
				p.cur.Flags = append(p.cur.Flags, flag)
			}
		}
	}
}

func (p *poParser) parseKeywordOrString(line string) error {
	if strings.HasPrefix(line, `"`) {
		s, err := unquotePO(line)
		if err != nil {
			return err
		}

		return p.appendString(s)
	}

	keyword, rest, ok := strings.Cut(line, " ")
	if !ok {
		keyword, rest, ok = strings.Cut(line, "\t")
	}

	if !ok {
		return fmt.Errorf("expected a keyword followed by a string, got %q", line)
	}

	s, err := unquotePO(rest)
	if err != nil {
		return err
	}

	switch {
	case keyword == "msgctxt":
		p.cur.Context = s
		p.last = fieldContext
	case keyword == "msgid":
		if p.last == fieldID || p.last == fieldPluralID {
			return fmt.Errorf("duplicate msgid")
		}

		p.cur.ID = s
		p.last = fieldID
	case keyword == "msgid_plural":
		if p.last != fieldID {
			return fmt.Errorf("msgid_plural without msgid")
		}

		p.cur.PluralID = s
		p.last = fieldPluralID
	case keyword == "msgstr":
		if p.last != fieldID {
			return fmt.Errorf("msgstr without msgid")
		}

		p.cur.Translation = s
		p.last = fieldTranslation
	case strings.HasPrefix(keyword, "msgstr[") && strings.HasSuffix(keyword, "]"):
		n, err := strconv.Atoi(keyword[len("msgstr[") : len(keyword)-1])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid plural index in %q", keyword)
		}

		if p.last != fieldPluralID && p.last != fieldPluralTranslation {
			return fmt.Errorf("%s without msgid_plural", keyword)
		}

		if p.cur.PluralTranslations == nil {
			p.cur.PluralTranslations = map[int]string{}
		}

		p.cur.PluralTranslations[n] = s
		p.pluralIndex = n
		p.last = fieldPluralTranslation
	default:
		return fmt.Errorf("unknown keyword %q", keyword)
	}

	return nil
}

func (p *poParser) appendString(s string) error {
	switch p.last {
	case fieldContext:
		p.cur.Context += s
	case fieldID:
		p.cur.ID += s
	case fieldPluralID:
		p.cur.PluralID += s
	case fieldTranslation:
		p.cur.Translation += s
	case fieldPluralTranslation:
		p.cur.PluralTranslations[p.pluralIndex] += s
	default:
		return fmt.Errorf("string continuation outside of an entry")
	}

	return nil
}

// flush completes the current entry and starts a new one.
func (p *poParser) flush() error {
	defer p.reset()

	if p.obsolete {
		return nil
	}

	switch p.last {
	case fieldNone:
		return nil
	case fieldContext, fieldID, fieldPluralID:
		return fmt.Errorf("entry %q has no msgstr", p.cur.ID)
	}

	if p.cur.ID == "" && p.cur.Context == "" {
		if !p.headerSeen {
			p.cat.Header = parseHeader(p.cur.Translation)
			p.headerSeen = true
		}

		return nil
	}

	p.cat.Entries = append(p.cat.Entries, p.cur)

	return nil
}

// unquotePO decodes a double quoted PO string with C escapes.
func unquotePO(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("malformed string %s", s)
	}

	s = s[1 : len(s)-1]

	var b strings.Builder
	b.Grow(len(s))

	for len(s) > 0 {
		// strconv.UnquoteChar rejects these when the quote is '"'.
		if strings.HasPrefix(s, `\'`) || strings.HasPrefix(s, `\?`) {
			b.WriteByte(s[1])
			s = s[2:]

			continue
		}

		value, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return "", fmt.Errorf("malformed escape in string %q", s)
		}

		if value < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(value))
		} else {
			b.WriteRune(value)
		}

		s = tail
	}

	return b.String(), nil
}
