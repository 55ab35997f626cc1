// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// input errors.
var (
	ErrNotExist = errors.New("file does not exist")
	ErrRead     = errors.New("failed to read file")
	ErrParse    = errors.New("failed to parse catalog")
)

// InputError reports a catalog file that could not be loaded. It concerns
// the whole file, never a single entry.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrNotExist) {
		return fmt.Sprintf("file does not exist %q", e.Path)
	}

	return fmt.Sprintf("unable to parse file %q: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Load reads the catalog at path.
//
// The format is chosen by file name: names ending in ".json" are read as
// gotext.json, anything else as gettext PO. A trailing ".gz" or ".zst" is
// decompressed first. Any failure is returned as an *InputError.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &InputError{Path: path, Err: ErrNotExist}
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- reading user supplied catalogs is the point
	if err != nil {
		return nil, &InputError{Path: path, Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}

	name, data, err := decompress(path, raw)
	if err != nil {
		return nil, &InputError{Path: path, Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}

	cat, err := Parse(name, data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	cat.Path = path

	return cat, nil
}

// Parse parses data as a catalog, choosing the format from name.
func Parse(name string, data []byte) (*Catalog, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrParse)
	}

	if strings.HasSuffix(name, ".json") {
		return parseGotextJSON(data)
	}

	return parsePO(data)
}

// decompress strips a compression suffix from name and decodes data accordingly.
func decompress(name string, data []byte) (string, []byte, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return name, nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()

		out, err := io.ReadAll(r)
		if err != nil {
			return name, nil, fmt.Errorf("gzip: %w", err)
		}

		return strings.TrimSuffix(name, ".gz"), out, nil

	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return name, nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()

		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return name, nil, fmt.Errorf("zstd: %w", err)
		}

		return strings.TrimSuffix(name, ".zst"), out, nil
	}

	return name, data, nil
}
