// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package marker builds and checks synthetic translations used to test a
message lookup pipeline.

A synthetic translation is the original string with [Prefix] prepended and
[Suffix] appended. Looking a message up through gettext must return exactly
that wrapping; anything else means the pipeline corrupted, truncated or
mis-resolved the message. In ASCII art the string "foo" renders as:

	-->foo<--

Both marker characters lie outside ASCII to also exercise the encoding path.
They must never occur in real message text.
*/
package marker

import (
	"fmt"
	"unicode/utf8"
)

const (
	// Prefix is the right pointing arrow, U+2192.
	Prefix = '→'
	// Suffix is the left pointing arrow, U+2190.
	Suffix = '←'
)

// Reason tells which part of a candidate failed verification.
type Reason int

// Verification failure reasons.
const (
	PrefixMismatch Reason = iota + 1
	SuffixMismatch
	ContentMismatch
)

func (r Reason) String() string {
	switch r {
	case PrefixMismatch:
		return "prefix mismatch"
	case SuffixMismatch:
		return "suffix mismatch"
	case ContentMismatch:
		return "content mismatch"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// MismatchError is returned by [Verify] when a candidate is not the expected
// wrapping of the original string.
type MismatchError struct {
	Reason    Reason
	Original  string
	Candidate string
}

func (e *MismatchError) Error() string {
	switch e.Reason {
	case PrefixMismatch:
		return fmt.Sprintf("first char in translated string %q not equal to prefix %q", e.Candidate, Prefix)
	case SuffixMismatch:
		return fmt.Sprintf("last char in translated string %q not equal to suffix %q", e.Candidate, Suffix)
	default:
		return fmt.Sprintf("translated string %q minus the first & last character is not equal to msgid %q",
			e.Candidate, e.Original)
	}
}

// Encode wraps s with Prefix and Suffix.
func Encode(s string) string {
	return string(Prefix) + s + string(Suffix)
}

// EncodePlural wraps the singular and plural forms of a message
// independently. An empty plural stays empty.
func EncodePlural(singular, plural string) (string, string) {
	if plural == "" {
		return Encode(singular), ""
	}

	return Encode(singular), Encode(plural)
}

// Verify checks that candidate is exactly Encode(original).
//
// The checks run on characters, not bytes, in order: first character, last
// character, then everything in between. The returned error is a
// *MismatchError naming the first check that failed.
func Verify(original, candidate string) error {
	first, firstSize := utf8.DecodeRuneInString(candidate)
	if candidate == "" || first != Prefix {
		return &MismatchError{Reason: PrefixMismatch, Original: original, Candidate: candidate}
	}

	last, lastSize := utf8.DecodeLastRuneInString(candidate)
	if last != Suffix || len(candidate) < firstSize+lastSize {
		return &MismatchError{Reason: SuffixMismatch, Original: original, Candidate: candidate}
	}

	if candidate[firstSize:len(candidate)-lastSize] != original {
		return &MismatchError{Reason: ContentMismatch, Original: original, Candidate: candidate}
	}

	return nil
}
