package modmeta

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Fragment is the half-open line range [Start, End) owned by one
// top-level table: the header line plus every line up to (but not
// including) the next unrelated table header, or end of document.
type Fragment struct {
	Start int
	End   int
}

// AmbiguousTableError reports more than one header line claiming the
// same table. The document is malformed; callers must not retry.
type AmbiguousTableError struct {
	Table string
	Count int
}

func (e *AmbiguousTableError) Error() string {
	return fmt.Sprintf("found %d [%s] tables; expected at most one", e.Count, e.Table)
}

// Locate finds the unique fragment owned by table. A nil Fragment with
// a nil error means the table is absent (callers append a new one).
// More than one owning header returns an AmbiguousTableError.
func Locate(doc *Document, table string) (*Fragment, error) {
	owner := "[" + table + "]"
	sibling := "[[" + table // array-of-tables for the same name

	var owners []int
	lines := doc.Lines()
	for i, line := range lines {
		if stripLine(line) == owner {
			owners = append(owners, i)
		}
	}
	switch {
	case len(owners) == 0:
		return nil, nil
	case len(owners) > 1:
		return nil, &AmbiguousTableError{Table: table, Count: len(owners)}
	}

	start := owners[0]
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		s := stripLine(lines[i])
		if !isHeader(s) {
			continue
		}
		// Array-of-tables entries for the same name are siblings, not
		// owners; they neither extend nor terminate the fragment.
		if s == owner || strings.HasPrefix(s, sibling) {
			continue
		}
		end = i
		break
	}
	return &Fragment{Start: start, End: end}, nil
}

// Decode parses only the fragment's lines, so malformed text elsewhere
// in the document cannot block validation. It returns the table's
// key/value mapping.
func Decode(doc *Document, frag *Fragment, table string) (map[string]any, error) {
	text := strings.Join(doc.Lines()[frag.Start:frag.End], "\n")

	var parsed map[string]any
	if err := toml.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decoding [%s] table: %w", table, err)
	}
	inner, ok := parsed[table].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decoding [%s] table: not a table", table)
	}
	return inner, nil
}
