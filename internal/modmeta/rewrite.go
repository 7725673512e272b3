package modmeta

import (
	"fmt"
	"strings"
)

// Rewrite produces a new document text with the table's keys set to
// values, touching nothing outside the fragment's line range.
//
// With an existing fragment, each key in keyOrder that already has a
// `key = ...` line gets its value replaced in place; keys without a
// line are appended after the last non-blank body line. With a nil
// fragment the whole table is appended at end of document, preceded by
// one blank separator line when the document is non-empty and does not
// already end blank.
//
// Keys in keyOrder missing from values are skipped. The returned bool
// reports whether the output differs from the input; Rewrite is
// idempotent, so a second application reports no change.
func Rewrite(doc *Document, table string, frag *Fragment, values map[string]string, keyOrder []string) (string, bool) {
	var out string
	if frag == nil {
		out = appendTable(doc.Raw(), table, values, keyOrder)
	} else {
		out = rewriteFragment(doc, frag, values, keyOrder)
	}
	return out, out != doc.Raw()
}

func rewriteFragment(doc *Document, frag *Fragment, values map[string]string, keyOrder []string) string {
	lines := append([]string(nil), doc.Lines()...)

	// First line carrying each key inside the fragment body.
	keyLine := make(map[string]int)
	for i := frag.Start + 1; i < frag.End; i++ {
		k, ok := keyOfLine(lines[i])
		if !ok {
			continue
		}
		if _, seen := keyLine[k]; !seen {
			keyLine[k] = i
		}
	}

	// New keys go after the last non-blank body line so trailing blank
	// separators stay at the fragment's edge.
	insertAt := frag.Start + 1
	for i := frag.Start + 1; i < frag.End; i++ {
		if stripLine(lines[i]) != "" {
			insertAt = i + 1
		}
	}

	var added []string
	for _, key := range keyOrder {
		value, ok := values[key]
		if !ok {
			continue
		}
		if i, exists := keyLine[key]; exists {
			eq := strings.IndexByte(lines[i], '=')
			lines[i] = lines[i][:eq+1] + " " + formatValue(value)
		} else {
			added = append(added, key+" = "+formatValue(value))
		}
	}

	if len(added) > 0 {
		lines = append(lines[:insertAt], append(added, lines[insertAt:]...)...)
	}
	return strings.Join(lines, "\n")
}

func appendTable(text, table string, values map[string]string, keyOrder []string) string {
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	if text != "" && !strings.HasSuffix(text, "\n\n") {
		b.WriteString("\n")
	}
	b.WriteString("[" + table + "]\n")
	for _, key := range keyOrder {
		value, ok := values[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s = %s\n", key, formatValue(value))
	}
	return b.String()
}

// keyOfLine extracts the key from a `key = value` line. Headers,
// blanks, and comment-only lines have no key.
func keyOfLine(line string) (string, bool) {
	s := stripLine(line)
	if s == "" || strings.HasPrefix(s, "[") {
		return "", false
	}
	eq := strings.IndexByte(s, '=')
	if eq <= 0 {
		return "", false
	}
	key := strings.TrimSpace(s[:eq])
	if key == "" {
		return "", false
	}
	return key, true
}

// formatValue emits all-digit values as bare numeric literals and
// everything else as a quoted string with backslashes and quotes
// escaped.
func formatValue(v string) string {
	if v != "" && strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
		return v
	}
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
