// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pocheck/config"
)

const (
	cleanPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

#: main.go:3
msgid "Hello %(name)s"
msgstr "Hallo %(name)s"
`

	flawedPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

#: main.go:10
msgid "Hello %(name)s"
msgstr "Hallo"
`

	templatePOT = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

#: main.go:1
msgid "Open"
msgstr ""

#: main.go:2
msgctxt "menu"
msgid "File"
msgstr ""

#: main.go:3
msgid "One file"
msgid_plural "%(n)d files"
msgstr[0] ""
msgstr[1] ""
`

	anonymousPOT = `msgid ""
msgstr ""

#: main.go:7
msgid "%s of %d"
msgstr ""
`
)

// run executes pocheck in a fresh temporary directory holding files.
func run(t *testing.T, files map[string]string, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("POCHECK_LOG_OUTPUTS", filepath.Join(dir, "pocheck.log"))
	t.Setenv("POCHECK_LOG_FORMAT", "json")

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	var stdout bytes.Buffer

	var cfg config.Config

	cmd := NewRootCommand(&cfg, &stdout)
	cmd.SetArgs(append([]string{"--color=off"}, args...))
	cmd.SetOut(&stdout)

	err := cmd.Execute()

	return dir, stdout.String(), err
}

// readLog returns the JSON log written by run.
func readLog(t *testing.T, dir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "pocheck.log"))
	require.NoError(t, err)

	return string(data)
}

func TestValidatePo(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		args    []string
		wantErr error
		want    []string
	}{
		{
			name:  "Clean catalog",
			files: map[string]string{"de.po": cleanPO},
			args:  []string{"validate-po", "de.po"},
		},
		{
			name:    "Missing substitution",
			files:   map[string]string{"de.po": cleanPO, "fr.po": flawedPO},
			args:    []string{"validate-po", "--jobs=1", "de.po", "fr.po"},
			wantErr: ErrChecksFailed,
			want: []string{
				"1 validation errors in fr.po\n",
				"locations: main.go:10\n",
				"The following substitutions are absent in msgstr: %(name)s\n",
				"1 errors in 2 files\n",
			},
		},
		{
			name:    "Unreadable file",
			files:   map[string]string{"de.po": cleanPO},
			args:    []string{"validate-po", "de.po", "missing.po"},
			wantErr: ErrChecksFailed,
			want:    []string{"1 errors in 2 files\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := run(t, tt.files, tt.args...)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Empty(t, out)
			}

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestValidatePoRequiresArguments(t *testing.T) {
	_, _, err := run(t, nil, "validate-po")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChecksFailed)
}

func TestValidatePotDefaultsToConfiguredTemplate(t *testing.T) {
	_, out, err := run(t, map[string]string{"ipa.pot": anonymousPOT}, "validate-pot")

	require.ErrorIs(t, err, ErrChecksFailed)
	assert.Contains(t, out, "1 validation errors in ipa.pot\n")
	assert.Contains(t, out, "locations: main.go:7\n")
}

func TestTestGettext(t *testing.T) {
	dir, _, err := run(t, map[string]string{"messages.pot": templatePOT},
		"test-gettext", "--pot-file=messages.pot", "--lang=de_DE", "--domain=app",
		"--log-level=debug",
		"--metrics-file=metrics.prom")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "test.po"))
	assert.FileExists(t, filepath.Join(dir, "test_locale", "de_DE", "LC_MESSAGES", "app.mo"))

	// Two singular entries, one with a context, verify as well as the plural.
	logs := readLog(t, dir)
	assert.NotContains(t, logs, `"level":"error"`)
	assert.Contains(t, logs, `"sys":"roundtrip","path":"test.po"`)

	prom, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `pocheck_roundtrip_translations_total{result="valid"} 4`)
	assert.Contains(t, string(prom), `pocheck_last_run_timestamp_seconds{command="test-gettext"}`)
}

func TestTestGettextEmptyTemplate(t *testing.T) {
	_, _, err := run(t, map[string]string{"ipa.pot": "msgid \"\"\nmsgstr \"\"\n"}, "test-gettext")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChecksFailed)
	// The lookups run against the catalog read back from disk.
	assert.EqualError(t, err, "no translations found in test.po")
}

func TestCreateTest(t *testing.T) {
	dir, _, err := run(t, map[string]string{"ipa.pot": templatePOT}, "create-test", "--test-lang=xx")
	require.NoError(t, err)

	po, err := os.ReadFile(filepath.Join(dir, "xx.po"))
	require.NoError(t, err)
	assert.Contains(t, string(po), "msgstr \"→Open←\"\n")
	assert.FileExists(t, filepath.Join(dir, "test_locale", "xh_ZA", "LC_MESSAGES", "ipa.mo"))
}

func TestVersion(t *testing.T) {
	_, out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pocheck "+config.BuildVersion)
}
