// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package substitution

import (
	"fmt"
	"strings"
	"unicode"
)

// Labels naming the two sides of a catalog entry in diagnostics.
const (
	LabelMsgid  = "msgid"
	LabelMsgstr = "msgstr"
)

// Kind classifies a Diagnostic.
type Kind string

// Diagnostic kinds.
const (
	// MissingSubstitution reports a placeholder present on one side of an entry and absent on the other.
	MissingSubstitution Kind = "missing-substitution"
	// UnequalSubstitutionCount reports a shared placeholder used a different number of times on each side.
	UnequalSubstitutionCount Kind = "unequal-substitution-count"
	// MalformedSubstitutionSyntax reports stray whitespace, a missing format character or mismatched delimiters.
	MalformedSubstitutionSyntax Kind = "malformed-substitution-syntax"
	// AnonymousSubstitutionAmbiguity reports a string using more than one anonymous placeholder.
	AnonymousSubstitutionAmbiguity Kind = "anonymous-substitution-ambiguity"
)

// Options configures the checks. It is passed explicitly to every check.
type Options struct {
	// Pedantic enables occurrence count parity and placeholder syntax checks.
	Pedantic bool
	// ShowStrings attaches the offending strings to diagnostics for display.
	ShowStrings bool
	// Verbose enables informational output in callers.
	Verbose bool
}

// Excerpt is a labelled string shown alongside a diagnostic.
type Excerpt struct {
	Label string
	Text  string
}

// Lines returns the excerpt as it is displayed: a label banner followed by
// the right-trimmed text.
func (e Excerpt) Lines() []string {
	return []string{
		">>> " + e.Label + " <<<",
		strings.TrimRightFunc(e.Text, unicode.IsSpace),
	}
}

// Diagnostic is one finding about a placeholder in a labelled string.
type Diagnostic struct {
	Kind    Kind
	Message string
	// Label is the name of the string the finding is about, "msgid" or "msgstr".
	Label string
	// Excerpts is empty unless Options.ShowStrings was set.
	Excerpts []Excerpt
}

func (d Diagnostic) String() string {
	return d.Message
}

func newDiagnostic(kind Kind, label, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Label:   label,
	}
}

// attachExcerpts sets the same excerpts on every diagnostic when opts asks for them.
func attachExcerpts(diags []Diagnostic, opts Options, excerpts ...Excerpt) []Diagnostic {
	if !opts.ShowStrings || len(diags) == 0 {
		return diags
	}

	for i := range diags {
		diags[i].Excerpts = excerpts
	}

	return diags
}
