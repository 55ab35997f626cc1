// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package substitution

import "regexp"

var (
	// Python style substitution, e.g. %(foo)s, where foo is the key and s is
	// the format character.
	//
	// group 1: whitespace between % and (
	// group 2: whitespace between ( and key
	// group 3: whitespace between key and )
	// group 4: whitespace between ) and format character
	// group 5: format character
	keywordSyntaxRegexp = regexp.MustCompile(`%(\s*)\((\s*)\w+(\s*)\)(\s*)([srduoxf]\b)?`)

	// Shell style substitution, e.g. $foo $(foo) ${foo}.
	//
	// group 1: whitespace between $ and opening delimiter
	// group 2: opening delimiter
	// group 3: whitespace between opening delimiter and variable
	// group 4: whitespace between variable and closing delimiter
	// group 5: closing delimiter
	shellSyntaxRegexp = regexp.MustCompile(`\$(\s*)([({]?)(\s*)\w+(\s*)([)}]?)`)
)

// matchedDelimiters maps an opening shell delimiter to its closing one.
var matchedDelimiters = map[string]string{
	"":  "",
	"(": ")",
	"{": "}",
}

// ValidateSyntax reports malformed keyword and shell placeholders in text.
// label names text in the messages, usually "msgid" or "msgstr".
func ValidateSyntax(text, label string, opts Options) []Diagnostic {
	var diags []Diagnostic

	for _, m := range keywordSyntaxRegexp.FindAllStringSubmatch(text, -1) {
		matched := m[0]

		if m[1] != "" {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has whitespace between %% and key in '%s'", label, matched))
		}

		if m[2] != "" || m[3] != "" {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has whitespace next to key in '%s'", label, matched))
		}

		if m[4] != "" {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has whitespace between key and format character in '%s'", label, matched))
		}

		if m[5] == "" {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has no format character in '%s'", label, matched))
		}
	}

	for _, m := range shellSyntaxRegexp.FindAllStringSubmatch(text, -1) {
		matched := m[0]

		if m[1] != "" {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has whitespace between $ and variable in '%s'", label, matched))
		}

		// Trailing whitespace only counts inside a closing delimiter, otherwise
		// it is just the space after a bare $foo.
		if m[3] != "" || (m[4] != "" && m[5] != "") {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s has whitespace next to variable in '%s'", label, matched))
		}

		begin, end := m[2], m[5]
		if matchedDelimiters[begin] != end {
			diags = append(diags, newDiagnostic(MalformedSubstitutionSyntax, label,
				"%s variable delimiters do not match in '%s', begin delimiter='%s' end delimiter='%s'",
				label, matched, begin, end))
		}
	}

	return attachExcerpts(diags, opts, Excerpt{Label: label, Text: text})
}
