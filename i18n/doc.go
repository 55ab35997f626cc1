// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n is the message lookup runtime exercised by the round-trip test.
It resolves source message ids (msgids) through compiled GNU gettext
catalogues with github.com/leonelquinteros/gotext, the same way a program
using gettext would at run time.

# Layout

Catalogues are read from the conventional gettext tree:

	<localeDir>/<lang>/LC_MESSAGES/<domain>.mo

A .po file at the same place takes precedence, which is how gotext resolves
domains.

# Lookups

	rt, err := i18n.Open("test_locale", "xh_ZA", "ipa")
	s, ok := rt.Lookup(i18n.Message{ID: "Open", Context: "menu"})
	s, ok = rt.Lookup(i18n.Message{ID: "%(n)d file", PluralID: "%(n)d files", N: 2})

Messages are returned verbatim. Placeholders are never expanded, so the
result can be compared with the catalogue byte for byte.

# Missing translations

A lookup without a translation returns the msgid (or the plural msgid when
N != 1) and false. Each missing (context, msgid) pair is logged once.
*/
package i18n
