// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

// Message identifies a lookup.
type Message struct {
	// Context is the msgctxt, empty for none.
	Context string
	ID      string
	// PluralID selects a plural lookup when non-empty.
	PluralID string
	// N is the count used to choose a plural form.
	N int
}

// Plural reports whether m is a plural lookup.
func (m Message) Plural() bool {
	return m.PluralID != ""
}

// fallback is what gettext returns when m has no translation.
func (m Message) fallback() string {
	if m.Plural() && m.N != 1 {
		return m.PluralID
	}

	return m.ID
}

// noArgs is passed to the gotext getters so that msgids are never used as
// format strings: placeholders stay unexpanded.
var noArgs []any

// singularN selects the singular form when checking a non-plural message.
// gotext's IsTranslatedD and IsTranslatedDC resolve n=0, which is a plural
// index under rules such as (n != 1).
const singularN = 1

// Lookup returns the translation of m and whether one was found. Without a
// translation it returns the msgid, or the plural msgid when N != 1.
func (rt *Runtime) Lookup(m Message) (string, bool) {
	var (
		loc   = rt.locale
		dom   = rt.domain
		found bool
		text  string
	)

	switch {
	case m.Plural() && m.Context != "":
		found = loc.IsTranslatedNDC(dom, m.ID, m.N, m.Context)
		if found {
			text = loc.GetNDC(dom, m.ID, m.PluralID, m.N, m.Context, noArgs...)
		}
	case m.Plural():
		found = loc.IsTranslatedND(dom, m.ID, m.N)
		if found {
			text = loc.GetND(dom, m.ID, m.PluralID, m.N, noArgs...)
		}
	case m.Context != "":
		found = loc.IsTranslatedNDC(dom, m.ID, singularN, m.Context)
		if found {
			text = loc.GetDC(dom, m.ID, m.Context, noArgs...)
		}
	default:
		found = loc.IsTranslatedND(dom, m.ID, singularN)
		if found {
			text = loc.GetD(dom, m.ID, noArgs...)
		}
	}

	if !found {
		rt.logMissingOnce(m)

		return m.fallback(), false
	}

	return text, true
}
