// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package validate

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/pocheck/core/audit"
	"codeberg.org/pixivfe/pocheck/core/catalog"
	"codeberg.org/pixivfe/pocheck/core/substitution"
)

// Loader reads the catalog at a path. catalog.Load is the usual choice.
type Loader func(path string) (*catalog.Catalog, error)

// FileResult is the outcome for one file: either Report or Err is set.
type FileResult struct {
	Path   string
	Report *FileReport
	Err    error
}

// Batch holds the results of a multi-file run in argument order.
type Batch struct {
	Results []FileResult
}

// FlawedEntries returns the number of flawed entries across all files.
func (b *Batch) FlawedEntries() int {
	n := 0

	for _, r := range b.Results {
		if r.Report != nil {
			n += r.Report.Flawed()
		}
	}

	return n
}

// InputErrors returns the files that could not be loaded.
func (b *Batch) InputErrors() []FileResult {
	var out []FileResult

	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}

	return out
}

// Total is the pass/fail count of the run: flawed entries plus one per
// file that could not be loaded.
func (b *Batch) Total() int {
	return b.FlawedEntries() + len(b.InputErrors())
}

// Files loads and checks each path. At most jobs files are processed at
// once; jobs <= 0 means no limit. A file that fails to load is recorded in
// its FileResult and does not stop the others. Results keep the order of
// paths regardless of completion order.
//
// The returned error is non-nil only when ctx is cancelled.
func Files(ctx context.Context, paths []string, mode Mode, opts substitution.Options, jobs int, load Loader) (*Batch, error) {
	batch := &Batch{Results: make([]FileResult, len(paths))}

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			span := audit.Span{Operation: audit.OpValidate, Path: path, Detail: mode.String()}
			span.Begin(ctx)

			if info, err := os.Stat(path); err == nil {
				span.Size = int(info.Size())
			}

			defer span.Log()
			defer span.End()

			result := FileResult{Path: path}

			cat, err := load(path)
			if err != nil {
				result.Err = err
				span.Error = err
			} else {
				result.Report = Catalog(cat, mode, opts)
				span.Entries = result.Report.Entries
				span.Flawed = result.Report.Flawed()
			}

			batch.Results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batch, err
	}

	return batch, nil
}
