// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// WritePO writes cat as a gettext PO file: the header entry first, then
// every entry in catalog order.
func WritePO(w io.Writer, cat *Catalog) error {
	bw := bufio.NewWriter(w)

	writeString(bw, "msgid", "")
	writeString(bw, "msgstr", cat.Header.String())

	for _, e := range cat.Entries {
		bw.WriteString("\n")

		if len(e.Occurrences) > 0 {
			refs := make([]string, len(e.Occurrences))
			for i, o := range e.Occurrences {
				refs[i] = o.String()
			}

			bw.WriteString("#: " + strings.Join(refs, " ") + "\n")
		}

		if len(e.Flags) > 0 {
			bw.WriteString("#, " + strings.Join(e.Flags, ", ") + "\n")
		}

		if e.Context != "" {
			writeString(bw, "msgctxt", e.Context)
		}

		writeString(bw, "msgid", e.ID)

		if !e.HasPlural() {
			writeString(bw, "msgstr", e.Translation)

			continue
		}

		writeString(bw, "msgid_plural", e.PluralID)

		forms := e.PluralTranslationList()
		if len(forms) == 0 {
			forms = []string{""}
		}

		for i, s := range forms {
			writeString(bw, fmt.Sprintf("msgstr[%d]", i), s)
		}
	}

	return bw.Flush()
}

// WritePOFile writes cat to path.
func WritePOFile(path string, cat *Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WritePO(f, cat); err != nil {
		f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// writeString writes keyword and a quoted string. Strings containing
// newlines are split after each newline, gettext style.
func writeString(w *bufio.Writer, keyword, s string) {
	if !strings.Contains(strings.TrimSuffix(s, "\n"), "\n") {
		fmt.Fprintf(w, "%s \"%s\"\n", keyword, poEscaper.Replace(s))

		return
	}

	fmt.Fprintf(w, "%s \"\"\n", keyword)

	for s != "" {
		line, rest, found := strings.Cut(s, "\n")
		if found {
			line += "\n"
		}

		fmt.Fprintf(w, "\"%s\"\n", poEscaper.Replace(line))

		s = rest
	}
}
