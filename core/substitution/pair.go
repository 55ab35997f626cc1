// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package substitution

import "strings"

// Compare reports the placeholders that differ between source and translated.
//
// Placeholders may appear in any order. A token present on one side only is
// reported once per side, listing every such token. With opts.Pedantic the
// tokens shared by both sides must also occur the same number of times.
func Compare(source, translated, sourceLabel, translatedLabel string, opts Options) []Diagnostic {
	sourceCounts := Extract(source)
	translatedCounts := Extract(translated)

	var diags []Diagnostic

	if missing := difference(translatedCounts, sourceCounts); len(missing) > 0 {
		diags = append(diags, newDiagnostic(MissingSubstitution, sourceLabel,
			"The following substitutions are absent in %s: %s", sourceLabel, joinTokens(missing)))
	}

	if missing := difference(sourceCounts, translatedCounts); len(missing) > 0 {
		diags = append(diags, newDiagnostic(MissingSubstitution, translatedLabel,
			"The following substitutions are absent in %s: %s", translatedLabel, joinTokens(missing)))
	}

	if opts.Pedantic {
		for _, token := range sourceCounts.Keys() {
			translatedCount, shared := translatedCounts[token]
			if !shared || translatedCount == sourceCounts[token] {
				continue
			}

			diags = append(diags, newDiagnostic(UnequalSubstitutionCount, translatedLabel,
				"unequal occurrences of '%s', %s has %d occurrences, %s has %d occurrences",
				token, sourceLabel, sourceCounts[token], translatedLabel, translatedCount))
		}
	}

	return attachExcerpts(diags, opts,
		Excerpt{Label: sourceLabel, Text: source},
		Excerpt{Label: translatedLabel, Text: translated},
	)
}

// difference returns the sorted tokens of a that are not in b.
func difference(a, b Counts) []Token {
	var out []Token

	for _, token := range a.Keys() {
		if _, ok := b[token]; !ok {
			out = append(out, token)
		}
	}

	return out
}

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}

	return strings.Join(parts, " ")
}
