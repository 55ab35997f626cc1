// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command potextract builds a gettext template from the gotext lookups of
// the Go packages matching its arguments ("./..." by default).
package main

import (
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/pixivfe/pocheck/core/audit"
	"codeberg.org/pixivfe/pocheck/core/catalog"
)

func main() {
	audit.SetDefaultLogger()

	outPath := flag.String("o", "po/messages.pot", "output file")
	domain := flag.String("d", "", "only extract domain lookups (GetD and friends) for this domain")
	project := flag.String("project", "", "Project-Id-Version of the template (default: git describe)")
	flag.Parse()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, patterns...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	e := newExtractor(findProjectRoot(wd), *domain)

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e.inspect(p.Fset, p.TypesInfo, p.Syntax)
	}

	version := *project
	if version == "" {
		version = detectVersion()
	}

	cat := &catalog.Catalog{
		Path:    *outPath,
		Format:  catalog.FormatPO,
		Header:  templateHeader(version, time.Now()),
		Entries: e.entries(),
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	if err := catalog.WritePOFile(*outPath, cat); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	log.Info().
		Str("path", *outPath).
		Int("entries", len(cat.Entries)).
		Msg("Wrote template")
}

func templateHeader(version string, now time.Time) catalog.Header {
	var h catalog.Header

	h.Set("Project-Id-Version", version)
	h.Set("POT-Creation-Date", now.UTC().Format("2006-01-02 15:04+0000"))
	h.Set("Language", "")
	h.Set("MIME-Version", "1.0")
	h.Set("Content-Type", "text/plain; charset=UTF-8")
	h.Set("Content-Transfer-Encoding", "8bit")
	h.Set("Plural-Forms", catalog.DefaultPluralForms)

	return h
}

// detectVersion resolves a human-friendly version string using git describe.
// Falls back to "dev" when git is unavailable or this is not a git checkout.
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot picks the root that references are made relative to:
// the git toplevel, else the nearest directory holding go.mod, else wd.
func findProjectRoot(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = wd

	if out, err := cmd.Output(); err == nil {
		if root := strings.TrimSpace(string(out)); root != "" {
			return filepath.Clean(root)
		}
	}

	for dir := filepath.Clean(wd); ; dir = filepath.Dir(dir) {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		if filepath.Dir(dir) == dir {
			return wd
		}
	}
}
