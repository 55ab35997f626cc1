// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig writes the example configuration files under deploy/
// from the pocheck defaults.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocheck/config"
	"codeberg.org/pixivfe/pocheck/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/pocheck.yaml.example"
	filePerm       = 0o644

	envFileHeader = `# pocheck configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
# Variables already set in the environment take precedence over this file,
# and command-line flags take precedence over both.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# pocheck configuration (via configuration file)
#
# Copy this file to pocheck.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

func main() {
	audit.SetDefaultLogger()

	cfg := &config.Config{}
	cfg.SetDefaults()

	yamlContent, err := renderYAML(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	write(envOutputFile, renderEnv(cfg))
	write(yamlOutputFile, yamlContent)
}

func write(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create directory")
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write file")
	}

	log.Info().Str("path", path).Msg("Successfully generated")
}

// renderEnv lists every POCHECK_* variable, commented out, with its default.
func renderEnv(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case value.Kind() == reflect.Slice:
				items := make([]string, value.Len())
				for k := range value.Len() {
					items[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, strings.Join(items, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// renderYAML marshals the defaults with every value commented out.
func renderYAML(cfg *config.Config) (string, error) {
	var yamlContent strings.Builder
	if err := yaml.NewEncoder(&yamlContent, yaml.Indent(2)).Encode(cfg); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "validation:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
