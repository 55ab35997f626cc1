// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/leonelquinteros/gotext"
)

// missingKeys deduplicates warnings for missing msgids.
type missingKeys struct {
	seen sync.Map
}

// logMissingOnce logs a missing translation warning once per key.
func (rt *Runtime) logMissingOnce(m Message) {
	key := buildLogKey(m.Context, m.ID)

	if _, loaded := rt.missing.seen.LoadOrStore(key, struct{}{}); !loaded {
		rt.Logger.Warn().
			Str("locale", rt.tag.String()).
			Str("key", key).
			Msg("Missing i18n translation")
	}
}

// buildLogKey composes the logging key like gettext "ctx<sep>msgid" when context is present.
func buildLogKey(ctxKey, id string) string {
	if ctxKey != "" {
		return ctxKey + gotext.EotSeparator + id
	}

	return id
}
