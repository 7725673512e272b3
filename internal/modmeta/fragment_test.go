package modmeta

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLocate
// ---------------------------------------------------------------------------

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("AbsentTable", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[other]\nx = 1\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if frag != nil {
			t.Errorf("Locate() = %+v, want nil for absent table", frag)
		}
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		t.Parallel()
		frag, err := Locate(ParseDocument(""), "mc-publish")
		if err != nil || frag != nil {
			t.Errorf("Locate() = %+v, %v; want nil, nil", frag, err)
		}
	})

	t.Run("OwnsThroughEndOfDocument", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\nmodrinth = \"abc\"\nloader = \"forge\"\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if frag.Start != 0 || frag.End != len(doc.Lines()) {
			t.Errorf("Fragment = [%d, %d), want [0, %d)", frag.Start, frag.End, len(doc.Lines()))
		}
	})

	t.Run("EndsAtNextHeader", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\n[other]\nx = 1\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if frag.Start != 0 || frag.End != 1 {
			t.Errorf("Fragment = [%d, %d), want [0, 1)", frag.Start, frag.End)
		}
	})

	t.Run("AmbiguousHeaders", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\na = 1\n[mc-publish]\nb = 2\n")
		_, err := Locate(doc, "mc-publish")
		var ambErr *AmbiguousTableError
		if !errors.As(err, &ambErr) {
			t.Fatalf("Locate() error = %v, want AmbiguousTableError", err)
		}
		if ambErr.Count != 2 {
			t.Errorf("Count = %d, want 2", ambErr.Count)
		}
	})

	t.Run("TrailingCommentOnHeader", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]  # publish metadata\nx = 1\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil || frag == nil {
			t.Fatalf("Locate() = %+v, %v; want fragment at 0", frag, err)
		}
		if frag.Start != 0 {
			t.Errorf("Start = %d, want 0", frag.Start)
		}
	})

	t.Run("ArrayOfTablesIsNotOwner", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[[mc-publish]]\nx = 1\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil || frag != nil {
			t.Errorf("Locate() = %+v, %v; want nil, nil", frag, err)
		}
	})

	t.Run("ArrayOfTablesDoesNotTerminate", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\na = 1\n[[mc-publish.extra]]\nb = 2\n[other]\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if frag.End != 4 {
			t.Errorf("End = %d, want 4 (the [other] header)", frag.End)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDecode
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("FragmentOnly", func(t *testing.T) {
		t.Parallel()
		// Malformed text under a later table must not block decoding.
		doc := ParseDocument("[mc-publish]\nmodrinth = \"abc\"\n\n[other]\nnot toml at all\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		values, err := Decode(doc, frag, "mc-publish")
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if values["modrinth"] != "abc" {
			t.Errorf("modrinth = %v, want abc", values["modrinth"])
		}
	})

	t.Run("MalformedFragment", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\nmodrinth = = broken\n")
		frag, err := Locate(doc, "mc-publish")
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if _, err := Decode(doc, frag, "mc-publish"); err == nil {
			t.Error("Decode() succeeded on malformed fragment")
		}
	})

	t.Run("NonStringScalars", func(t *testing.T) {
		t.Parallel()
		doc := ParseDocument("[mc-publish]\ncurseforge = 123456\n")
		frag, _ := Locate(doc, "mc-publish")
		values, err := Decode(doc, frag, "mc-publish")
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := values["curseforge"]; !ok {
			t.Error("curseforge missing from decoded values")
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseDocument
// ---------------------------------------------------------------------------

func TestParseDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "a", "a\n", "a\nb", "a\n\nb\n"} {
		doc := ParseDocument(text)
		if joined := strings.Join(doc.Lines(), "\n"); joined != text {
			t.Errorf("join(lines(%q)) = %q, want identity", text, joined)
		}
	}
}
