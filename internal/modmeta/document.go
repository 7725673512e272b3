// Package modmeta locates, validates, and minimally rewrites the
// [mc-publish] metadata table inside a mod repository's mods.toml.
//
// The file is treated as an ordered sequence of opaque lines: only the
// line range owned by the target table is ever touched, so comments,
// blank lines, and unrelated tables elsewhere in the document survive
// byte-for-byte.
package modmeta

import "strings"

// TableName is the well-known top-level table holding publish metadata.
const TableName = "mc-publish"

// Document is an immutable view of a structured-text file as raw text
// plus its line sequence. Joining the lines with "\n" reproduces the
// raw text exactly.
type Document struct {
	raw   string
	lines []string
}

// ParseDocument splits text into a Document.
func ParseDocument(text string) *Document {
	return &Document{
		raw:   text,
		lines: strings.Split(text, "\n"),
	}
}

// Raw returns the original text.
func (d *Document) Raw() string { return d.raw }

// Lines returns the document's line sequence. Callers must not mutate
// the returned slice.
func (d *Document) Lines() []string { return d.lines }

// stripLine removes a trailing comment and surrounding whitespace,
// leaving only the structurally significant text of a line.
func stripLine(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// isHeader reports whether a stripped line is a table header.
func isHeader(stripped string) bool {
	return len(stripped) >= 2 && strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]")
}
