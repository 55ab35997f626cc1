// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	moMagic      = 0x950412de
	moHeaderSize = 28
)

// contextSeparator joins msgctxt and msgid in MO keys.
const contextSeparator = "\x04"

type moMessage struct {
	key   string
	value string
}

// WriteMO compiles cat into a little-endian GNU MO file without a hash
// table. Entries with an empty translation are left out so that lookups
// fall back to the msgid, matching msgfmt.
func WriteMO(w io.Writer, cat *Catalog) error {
	messages := []moMessage{{key: "", value: cat.Header.String()}}

	for _, e := range cat.Entries {
		key := e.ID
		if e.Context != "" {
			key = e.Context + contextSeparator + key
		}

		var value string

		if e.HasPlural() {
			key += "\x00" + e.PluralID
			value = strings.Join(e.PluralTranslationList(), "\x00")
		} else {
			value = e.Translation
		}

		if strings.Trim(value, "\x00") == "" {
			continue
		}

		messages = append(messages, moMessage{key: key, value: value})
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].key < messages[j].key
	})

	n := uint32(len(messages))
	origTable := uint32(moHeaderSize)
	transTable := origTable + 8*n
	dataStart := transTable + 8*n

	var (
		head = new(bytes.Buffer)
		orig = new(bytes.Buffer)
		tran = new(bytes.Buffer)
		data = new(bytes.Buffer)
	)

	for _, v := range []uint32{moMagic, 0, n, origTable, transTable, 0, dataStart} {
		_ = binary.Write(head, binary.LittleEndian, v)
	}

	for _, m := range messages {
		writeMOString(orig, data, dataStart, m.key)
	}

	for _, m := range messages {
		writeMOString(tran, data, dataStart, m.value)
	}

	for _, b := range []*bytes.Buffer{head, orig, tran, data} {
		if _, err := b.WriteTo(w); err != nil {
			return err
		}
	}

	return nil
}

// writeMOString appends s, NUL terminated, to data and records its length
// and absolute offset in table.
func writeMOString(table, data *bytes.Buffer, dataStart uint32, s string) {
	_ = binary.Write(table, binary.LittleEndian, uint32(len(s)))
	_ = binary.Write(table, binary.LittleEndian, dataStart+uint32(data.Len()))

	data.WriteString(s)
	data.WriteByte(0)
}

// WriteMOFile writes the compiled cat to path.
func WriteMOFile(path string, cat *Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteMO(f, cat); err != nil {
		f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
