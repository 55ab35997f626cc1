// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext/plurals"
)

// DefaultPluralForms is the Germanic two-form rule written into synthetic
// test catalogs.
const DefaultPluralForms = "nplurals=2; plural=(n != 1);"

var errInvalidPluralForms = errors.New("invalid Plural-Forms header")

// PluralForms is a compiled Plural-Forms header.
type PluralForms struct {
	N    int
	Expr plurals.Expression
}

// Index returns the plural form used for count n.
func (p PluralForms) Index(n uint32) int {
	return p.Expr.Eval(n)
}

// CompilePluralForms parses a Plural-Forms header value such as
// "nplurals=2; plural=(n != 1);".
func CompilePluralForms(value string) (PluralForms, error) {
	var (
		forms      = PluralForms{N: -1}
		expression string
	)

	for _, part := range strings.Split(value, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "nplurals":
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil || n < 1 {
				return PluralForms{}, fmt.Errorf("%w: nplurals %q", errInvalidPluralForms, val)
			}

			forms.N = n
		case "plural":
			expression = strings.TrimSpace(val)
		}
	}

	if forms.N < 0 || expression == "" {
		return PluralForms{}, fmt.Errorf("%w: %q", errInvalidPluralForms, value)
	}

	expr, err := plurals.Compile(expression)
	if err != nil {
		return PluralForms{}, fmt.Errorf("%w: %w", errInvalidPluralForms, err)
	}

	forms.Expr = expr

	return forms, nil
}

// NormalizePluralForms sets the Plural-Forms header of cat to
// DefaultPluralForms, adding it when absent, and checks that the result
// compiles.
func NormalizePluralForms(cat *Catalog) error {
	cat.Header.Set("Plural-Forms", DefaultPluralForms)

	_, err := CompilePluralForms(DefaultPluralForms)

	return err
}
