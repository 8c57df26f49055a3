package headerargs

import (
	"errors"
	"strings"
	"testing"

	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
)

const layeredDoc = `* Top
:PROPERTIES:
:header-args: :path inherited.py :dir /tmp
:END:
#+header: :path header.py
#+begin_src python :path inline.py
pass
#+end_src
`

func parseDoc(t *testing.T, text string) (*orgdoc.Document, *orgdoc.Block) {
	t.Helper()
	doc, err := orgdoc.ParseDocument("test.org", text)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Blocks) == 0 {
		t.Fatal("no blocks parsed")
	}
	return doc, doc.Blocks[0]
}

func TestFindLocations_PrecedenceOrder(t *testing.T) {
	doc, b := parseDoc(t, layeredDoc)

	locs, err := FindLocations(doc, b, "path")
	if err != nil {
		t.Fatalf("FindLocations: %v", err)
	}
	if len(locs) != 3 {
		t.Fatalf("locations = %d, want 3", len(locs))
	}

	wantKinds := []Kind{KindHeader, KindInline, KindInherited}
	wantValues := []string{"header.py", "inline.py", "inherited.py"}
	for i, loc := range locs {
		if loc.Kind != wantKinds[i] {
			t.Errorf("loc[%d].Kind = %v, want %v", i, loc.Kind, wantKinds[i])
		}
		if loc.Value != wantValues[i] {
			t.Errorf("loc[%d].Value = %q, want %q", i, loc.Value, wantValues[i])
		}
		if loc.Precedence != wantKinds[i].Precedence() {
			t.Errorf("loc[%d].Precedence = %d", i, loc.Precedence)
		}
	}
	if locs[2].Span != nil {
		t.Error("inherited location must not carry a span")
	}
}

func TestGet_HighestPrecedenceWins(t *testing.T) {
	doc, b := parseDoc(t, layeredDoc)

	v, ok, err := Get(doc, b, "path")
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	if v != "header.py" {
		t.Errorf("Get = %q, want header.py", v)
	}

	// Declared only in the inherited property.
	v, ok, _ = Get(doc, b, "dir")
	if !ok || v != "/tmp" {
		t.Errorf("dir = %q, %v", v, ok)
	}

	if _, ok, _ = Get(doc, b, "absent"); ok {
		t.Error("absent argument should not be found")
	}
}

func TestFindLocations_UnsupportedContext(t *testing.T) {
	doc, b := parseDoc(t, "#+begin_quote\nwords\n#+end_quote\n")
	_, err := FindLocations(doc, b, "path")
	if !errors.Is(err, ErrUnsupportedContext) {
		t.Fatalf("err = %v, want ErrUnsupportedContext", err)
	}
}

func TestSet_UpdatesHighestPrecedenceOnly(t *testing.T) {
	doc, b := parseDoc(t, layeredDoc)

	loc, err := Set(doc, b, "path", "rewritten.py", ModeUpdate)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if loc.Kind != KindHeader {
		t.Errorf("write target kind = %v, want header", loc.Kind)
	}
	if got := doc.Slice(*loc.Span); got != "rewritten.py" {
		t.Errorf("span content = %q", got)
	}

	text := doc.Text()
	if !strings.Contains(text, "#+header: :path rewritten.py") {
		t.Errorf("header line not rewritten:\n%s", text)
	}
	if !strings.Contains(text, ":path inline.py") {
		t.Error("inline declaration must be untouched")
	}
	if !strings.Contains(text, ":path inherited.py") {
		t.Error("inherited declaration must be untouched")
	}
}

func TestSet_InheritedIsReadOnly(t *testing.T) {
	doc, b := parseDoc(t, layeredDoc)

	// dir exists only at the inherited kind.
	if _, err := Set(doc, b, "dir", "/var", ModeUpdate); !errors.Is(err, ErrReadOnlyLocation) {
		t.Fatalf("err = %v, want ErrReadOnlyLocation", err)
	}

	// Insert modes shadow the inherited value with a fresh location instead.
	loc, err := Set(doc, b, "dir", "/var", ModeInsertHeader)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if loc.Kind != KindHeader {
		t.Errorf("new location kind = %v", loc.Kind)
	}
	if !strings.Contains(doc.Text(), "#+header: :dir /var") {
		t.Error("new header line not written")
	}
	if !strings.Contains(doc.Text(), ":dir /tmp") {
		t.Error("inherited source must be untouched")
	}

	// The shadow wins subsequent reads.
	if v, _, _ := Get(doc, b, "dir"); v != "/var" {
		t.Errorf("Get after shadow = %q", v)
	}
}

func TestSet_InsertModes(t *testing.T) {
	doc, b := parseDoc(t, "#+begin_src python\npass\n#+end_src\n")

	if _, err := Set(doc, b, "path", "x.py", ModeUpdate); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	loc, err := Set(doc, b, "path", "x.py", ModeUpsertHeader)
	if err != nil {
		t.Fatalf("upsert header: %v", err)
	}
	if !strings.HasPrefix(doc.Text(), "#+header: :path x.py\n#+begin_src python") {
		t.Errorf("document after insert:\n%s", doc.Text())
	}
	if got := doc.Slice(*loc.Span); got != "x.py" {
		t.Errorf("span content = %q", got)
	}

	// A second upsert now updates the freshly inserted line in place.
	if _, err := Set(doc, b, "path", "y.py", ModeUpsertHeader); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if strings.Count(doc.Text(), ":path") != 1 {
		t.Errorf("expected a single declaration:\n%s", doc.Text())
	}

	loc, err = Set(doc, b, "mime", "text/plain", ModeInsertInline)
	if err != nil {
		t.Fatalf("insert inline: %v", err)
	}
	if loc.Kind != KindInline {
		t.Errorf("kind = %v", loc.Kind)
	}
	if !strings.Contains(doc.Text(), "#+begin_src python :mime text/plain\n") {
		t.Errorf("inline token not appended:\n%s", doc.Text())
	}
	if v, _, _ := Get(doc, b, "mime"); v != "text/plain" {
		t.Errorf("Get after inline insert = %q", v)
	}
}

func TestUpdatePartial(t *testing.T) {
	doc, b := parseDoc(t, layeredDoc)

	loc, err := UpdatePartial(doc, b, "path", func(v string) string {
		return strings.ToUpper(v)
	})
	if err != nil {
		t.Fatalf("UpdatePartial: %v", err)
	}
	if loc.Value != "HEADER.PY" {
		t.Errorf("Value = %q", loc.Value)
	}
	if !strings.Contains(doc.Text(), "#+header: :path HEADER.PY") {
		t.Errorf("document:\n%s", doc.Text())
	}

	if _, err := UpdatePartial(doc, b, "absent", strings.ToUpper); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := UpdatePartial(doc, b, "dir", strings.ToUpper); !errors.Is(err, ErrReadOnlyLocation) {
		t.Errorf("err = %v, want ErrReadOnlyLocation", err)
	}
}

func TestGet_InlineDeclarationWithTrailingWhitespace(t *testing.T) {
	doc, b := parseDoc(t, "#+begin_src python :path x.py  \npass\n#+end_src\n")

	got, ok, err := Get(doc, b, "path")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "x.py" {
		t.Errorf("Get = %q, %v, want %q", got, ok, "x.py")
	}

	// A rewrite through the same location must land on the right bytes.
	if _, err := Set(doc, b, "path", "y.py", ModeUpdate); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if text := doc.Text(); !strings.Contains(text, ":path y.py") {
		t.Errorf("document after Set = %q", text)
	}
}
