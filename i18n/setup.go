// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

var (
	errInvalidDomain = errors.New("invalid gettext domain")
	errNoCatalog     = errors.New("no catalogue found")
)

// Runtime resolves messages of one gettext domain in one locale.
type Runtime struct {
	// Logger is the logger used by the runtime.
	Logger zerolog.Logger

	locale *gotext.Locale
	domain string
	lang   string
	tag    language.Tag
	file   string

	missing missingKeys
}

// Open loads the catalogue for domain in lang from localeDir.
//
// lang is a POSIX locale name such as "xh_ZA" or a BCP 47 tag such as
// "pt-BR"; it is used verbatim as the directory name and must parse as a
// language tag once underscores are replaced with hyphens.
func Open(localeDir, lang, domain string) (*Runtime, error) {
	tag, err := ParseLang(lang)
	if err != nil {
		return nil, err
	}

	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}

	file, err := CatalogPath(localeDir, lang, domain)
	if err != nil {
		return nil, err
	}

	loc := gotext.NewLocale(localeDir, lang)
	loc.AddDomain(domain)

	rt := &Runtime{
		Logger: log.With().Str("sys", "i18n").Logger(),
		locale: loc,
		domain: domain,
		lang:   lang,
		tag:    tag,
		file:   file,
	}

	rt.Logger.Info().
		Str("locale", tag.String()).
		Str("domain", domain).
		Str("file", file).
		Msg("Loaded locale")

	return rt, nil
}

// ParseLang parses a POSIX locale name or BCP 47 tag.
func ParseLang(lang string) (language.Tag, error) {
	name, _, _ := strings.Cut(lang, ".") // drop a codeset such as ".UTF-8"

	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Tag{}, fmt.Errorf("invalid locale %q: %w", lang, err)
	}

	return tag, nil
}

// ValidateDomain rejects domains that cannot name a catalogue file.
func ValidateDomain(domain string) error {
	if domain == "" || strings.ContainsAny(domain, `/\`) || domain == "." || domain == ".." {
		return fmt.Errorf("%w: %q", errInvalidDomain, domain)
	}

	return nil
}

// MessagesDir returns the LC_MESSAGES directory for lang under localeDir.
func MessagesDir(localeDir, lang string) string {
	return filepath.Join(localeDir, lang, "LC_MESSAGES")
}

// CatalogPath returns the catalogue gotext will load for domain, preferring
// .po over .mo.
func CatalogPath(localeDir, lang, domain string) (string, error) {
	dir := MessagesDir(localeDir, lang)

	for _, ext := range []string{".po", ".mo"} {
		file := filepath.Join(dir, domain+ext)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return file, nil
		}
	}

	return "", fmt.Errorf("%w for domain %q in %s", errNoCatalog, domain, dir)
}

// Tag returns the language tag of the runtime.
func (rt *Runtime) Tag() language.Tag {
	return rt.tag
}

// File returns the catalogue file the runtime was loaded from.
func (rt *Runtime) File() string {
	return rt.file
}
