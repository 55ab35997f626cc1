// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"codeberg.org/pixivfe/pocheck/core/catalog"
)

const gotextPath = "github.com/leonelquinteros/gotext"

// callShape gives the argument positions of a gotext lookup function.
// A negative index means the function does not take that argument.
type callShape struct {
	domain, id, plural, ctx int
}

// Package functions and the methods of Locale, Po, Mo and Translator share
// these argument layouts.
var callShapes = map[string]callShape{
	"Get":    {domain: -1, id: 0, plural: -1, ctx: -1},
	"GetN":   {domain: -1, id: 0, plural: 1, ctx: -1},
	"GetC":   {domain: -1, id: 0, plural: -1, ctx: 1},
	"GetNC":  {domain: -1, id: 0, plural: 1, ctx: 3},
	"GetD":   {domain: 0, id: 1, plural: -1, ctx: -1},
	"GetND":  {domain: 0, id: 1, plural: 2, ctx: -1},
	"GetDC":  {domain: 0, id: 1, plural: -1, ctx: 2},
	"GetNDC": {domain: 0, id: 1, plural: 2, ctx: 4},
}

type key struct {
	ctx    string
	id     string
	plural string
}

// extractor collects message references from type-checked files.
type extractor struct {
	refs   map[key][]catalog.Occurrence
	root   string
	domain string
	fset   *token.FileSet
	info   *types.Info
}

func newExtractor(root, domain string) *extractor {
	return &extractor{
		refs:   map[key][]catalog.Occurrence{},
		root:   root,
		domain: domain,
	}
}

// inspect walks files of one package.
func (e *extractor) inspect(fset *token.FileSet, info *types.Info, files []*ast.File) {
	e.fset = fset
	e.info = info

	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				e.handleCall(call)
			}

			return true
		})
	}
}

func (e *extractor) handleCall(x *ast.CallExpr) {
	var ident *ast.Ident

	switch fun := x.Fun.(type) {
	case *ast.SelectorExpr:
		ident = fun.Sel
	case *ast.Ident:
		ident = fun
	default:
		return
	}

	fn, ok := e.info.Uses[ident].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != gotextPath {
		return
	}

	shape, ok := callShapes[fn.Name()]
	if !ok {
		return
	}

	arg := func(i int) (string, bool) {
		if i < 0 {
			return "", true
		}

		if i >= len(x.Args) {
			return "", false
		}

		return constString(e.info, x.Args[i])
	}

	if e.domain != "" && shape.domain >= 0 {
		if dom, ok := arg(shape.domain); !ok || dom != e.domain {
			return
		}
	}

	id, ok1 := arg(shape.id)
	plural, ok2 := arg(shape.plural)
	ctx, ok3 := arg(shape.ctx)

	if !ok1 || !ok2 || !ok3 || id == "" {
		return
	}

	e.addRef(x.Args[shape.id].Pos(), key{ctx: ctx, id: id, plural: plural})
}

// constString evaluates expr to a constant string if possible.
// Handles string literals, const identifiers and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

func (e *extractor) addRef(pos token.Pos, k key) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.root, file); err == nil {
		file = rel
	}

	e.refs[k] = append(e.refs[k], catalog.Occurrence{File: filepath.ToSlash(file), Line: p.Line})
}

// entries returns the collected messages ordered by context, msgid and
// plural, each with sorted and deduplicated references.
func (e *extractor) entries() []*catalog.Entry {
	keys := make([]key, 0, len(e.refs))
	for k := range e.refs {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b key) int {
		return cmp.Or(cmp.Compare(a.ctx, b.ctx), cmp.Compare(a.id, b.id), cmp.Compare(a.plural, b.plural))
	})

	out := make([]*catalog.Entry, 0, len(keys))

	for _, k := range keys {
		refs := e.refs[k]
		slices.SortFunc(refs, func(a, b catalog.Occurrence) int {
			return cmp.Or(cmp.Compare(a.File, b.File), cmp.Compare(a.Line, b.Line))
		})

		entry := &catalog.Entry{
			Context:     k.ctx,
			ID:          k.id,
			PluralID:    k.plural,
			Occurrences: slices.Compact(refs),
		}

		if k.plural != "" {
			entry.PluralTranslations = map[int]string{0: "", 1: ""}
		}

		out = append(out, entry)
	}

	return out
}
