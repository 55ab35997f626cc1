// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package substitution

// GuardAnonymous reports every anonymous placeholder in text when there is
// more than one of them.
//
// Anonymous placeholders (e.g. '%s occurred') are positional, so translators
// cannot reorder them; a keyword substitution should be used instead. A single
// anonymous placeholder has nothing to be reordered with and is accepted.
func GuardAnonymous(text, label string, opts Options) []Diagnostic {
	matches := anonymousRegexp.FindAllString(text, -1)
	if len(matches) <= 1 {
		return nil
	}

	diags := make([]Diagnostic, 0, len(matches))
	for _, match := range matches {
		diags = append(diags, newDiagnostic(AnonymousSubstitutionAmbiguity, label,
			"%s has anonymous substitution '%s', use keyword substitution instead", label, match))
	}

	return attachExcerpts(diags, opts, Excerpt{Label: label, Text: text})
}
