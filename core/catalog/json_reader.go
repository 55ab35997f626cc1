// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var errNoMessages = errors.New(`"messages" is missing or not an array`)

// parseGotextJSON reads an x/text gotext.json catalog.
//
// The source string is "message" when present and "id" otherwise. An "id"
// given as an array uses its first element. A "translation" that is an
// object (a select/plural form) carries no plain msgstr and is left empty.
func parseGotextJSON(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrParse)
	}

	root := gjson.ParseBytes(data)

	messages := root.Get("messages")
	if !messages.IsArray() {
		return nil, fmt.Errorf("%w: %w", ErrParse, errNoMessages)
	}

	cat := &Catalog{
		Format:   FormatGotextJSON,
		Language: root.Get("language").String(),
	}

	if cat.Language != "" {
		cat.Header.Set("Language", cat.Language)
	}

	var parseErr error

	messages.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("%w: message %d is not an object", ErrParse, key.Int())

			return false
		}

		entry := &Entry{ID: messageSource(value)}

		if tr := value.Get("translation"); tr.Type == gjson.String {
			entry.Translation = tr.String()
		}

		if pos := value.Get("position"); pos.Exists() && pos.String() != "" {
			entry.Occurrences = append(entry.Occurrences, parseReference(pos.String()))
		}

		if value.Get("fuzzy").Bool() {
			entry.Flags = append(entry.Flags, "fuzzy")
		}

		if entry.ID != "" {
			cat.Entries = append(cat.Entries, entry)
		}

		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return cat, nil
}

func messageSource(value gjson.Result) string {
	if msg := value.Get("message"); msg.Exists() {
		return msg.String()
	}

	id := value.Get("id")
	if id.IsArray() {
		return id.Get("0").String()
	}

	return id.String()
}
