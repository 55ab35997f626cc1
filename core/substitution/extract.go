// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package substitution

import (
	"regexp"
	"sort"
)

// Go's regexp package is RE2 based, so every scan is linear in the input.
var (
	// e.g. %s
	anonymousRegexp = regexp.MustCompile(`%[srduoxf]\b`)
	// e.g. %(foo)s, with whitespace next to the key tolerated
	keywordRegexp = regexp.MustCompile(`%\(\s*\w+\s*\)[srduoxf]\b`)
	// e.g. $foo
	shellRegexp = regexp.MustCompile(`\$\w+`)
	// e.g. ${foo}
	shellBracedRegexp = regexp.MustCompile(`\$\{\w+\}`)
	// e.g. $(foo)
	shellParenRegexp = regexp.MustCompile(`\$\(\w+\)`)

	substitutionRegexps = []*regexp.Regexp{
		anonymousRegexp,
		keywordRegexp,
		shellRegexp,
		shellBracedRegexp,
		shellParenRegexp,
	}
)

// Token is the literal text of one placeholder occurrence, e.g. "%(name)s".
type Token string

// Counts maps each distinct placeholder token to its number of occurrences.
type Counts map[Token]int

// Keys returns the tokens in c in sorted order.
func (c Counts) Keys() []Token {
	keys := make([]Token, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Extract returns the placeholder tokens in text and their counts.
//
// Each syntax is matched independently over the whole of text, leftmost and
// non-overlapping, and the matches of all syntaxes are summed.
func Extract(text string) Counts {
	counts := Counts{}

	for _, re := range substitutionRegexps {
		for _, match := range re.FindAllString(text, -1) {
			counts[Token(match)]++
		}
	}

	return counts
}
