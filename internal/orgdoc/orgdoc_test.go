package orgdoc

import (
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `#+property: header-args :results silent
* Top
:PROPERTIES:
:header-args: :dir /tmp
:ID: top-id
:END:
** Inner
#+header: :type file
#+header: :lines 10-20
#+begin_src python :path sample.py
print("hi")
#+end_src
* Other
#+begin_transclusion :link [[file:/x]]
#+end_transclusion
`

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseDocument("test.org", text)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	return doc
}

func TestParseDocument_Structure(t *testing.T) {
	doc := mustParse(t, sampleDoc)

	if len(doc.Headlines) != 3 {
		t.Fatalf("headlines = %d, want 3", len(doc.Headlines))
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}

	src := doc.Blocks[0]
	if src.Kind != "src" {
		t.Errorf("Kind = %q, want src", src.Kind)
	}
	if src.Language != "python" {
		t.Errorf("Language = %q, want python", src.Language)
	}
	if got := doc.InlineParams(src); got != ":path sample.py" {
		t.Errorf("InlineParams = %q", got)
	}
	if len(src.HeaderLines) != 2 {
		t.Fatalf("header lines = %d, want 2", len(src.HeaderLines))
	}
	if got := doc.HeaderLineText(src.HeaderLines[0]); got != "#+header: :type file" {
		t.Errorf("first header line = %q", got)
	}
	if got := doc.Slice(src.Body); got != "print(\"hi\")\n" {
		t.Errorf("body = %q", got)
	}
	if src.Headline == nil || src.Headline.Title != "Inner" {
		t.Errorf("enclosing headline = %+v", src.Headline)
	}

	tr := doc.Blocks[1]
	if tr.Kind != "transclusion" {
		t.Errorf("Kind = %q, want transclusion", tr.Kind)
	}
	if got := doc.InlineParams(tr); got != ":link [[file:/x]]" {
		t.Errorf("InlineParams = %q", got)
	}
}

func TestParseDocument_Properties(t *testing.T) {
	doc := mustParse(t, sampleDoc)

	top := doc.Headlines[0]
	if top.Properties["header-args"] != ":dir /tmp" {
		t.Errorf("header-args property = %q", top.Properties["header-args"])
	}
	if top.Properties["id"] != "top-id" {
		t.Errorf("id property = %q", top.Properties["id"])
	}

	inner := doc.Headlines[1]
	if inner.Parent != top {
		t.Error("Inner should have Top as parent")
	}
}

func TestNearestHeaderArgs(t *testing.T) {
	doc := mustParse(t, sampleDoc)

	// Block under "Inner" inherits from "Top" via the parent chain.
	if got, ok := doc.NearestHeaderArgs(doc.Blocks[0]); !ok || got != ":dir /tmp" {
		t.Errorf("NearestHeaderArgs = %q, %v", got, ok)
	}
	// Block under "Other" falls back to the file keyword.
	if got, ok := doc.NearestHeaderArgs(doc.Blocks[1]); !ok || got != ":results silent" {
		t.Errorf("NearestHeaderArgs fallback = %q, %v", got, ok)
	}
}

func TestBlockAt(t *testing.T) {
	doc := mustParse(t, sampleDoc)

	src := doc.Blocks[0]
	if got := doc.BlockAt(src.BeginLine.Start); got != src {
		t.Error("BlockAt(begin line) should return the block")
	}
	// Header lines are part of the block's extent.
	if got := doc.BlockAt(src.HeaderLines[0].Span.Start); got != src {
		t.Error("BlockAt(header line) should return the block")
	}
	if got := doc.BlockAt(0); got != nil {
		t.Errorf("BlockAt(0) = %v, want nil", got)
	}
}

func TestParseDocument_UnclosedBlock(t *testing.T) {
	_, err := ParseDocument("bad.org", "#+begin_src python\nprint(1)\n")
	if err == nil {
		t.Fatal("expected structural error")
	}
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T", err)
	}
	if se.Line != 1 {
		t.Errorf("Line = %d, want 1", se.Line)
	}
	if !strings.Contains(se.Error(), "#+end_src") {
		t.Errorf("message should name the missing delimiter: %q", se.Error())
	}
}

func TestReplace_ReindexesSpans(t *testing.T) {
	doc := mustParse(t, sampleDoc)
	src := doc.Blocks[0]
	tr := doc.Blocks[1]

	trBeginBefore := tr.BeginLine
	bodyText := "print(\"replaced\")\nprint(\"twice\")\n"
	doc.Replace(src.Body, bodyText)

	if got := doc.Slice(src.Body); got != bodyText {
		t.Errorf("body after replace = %q", got)
	}
	if got := doc.Slice(src.EndLine); got != "#+end_src" {
		t.Errorf("end line after replace = %q", got)
	}
	if tr.BeginLine == trBeginBefore {
		t.Error("downstream block span should have shifted")
	}
	if got := doc.Slice(tr.BeginLine); !strings.HasPrefix(got, "#+begin_transclusion") {
		t.Errorf("downstream begin line = %q", got)
	}
}

func TestSpanReindex(t *testing.T) {
	tests := []struct {
		name string
		span Span
		edit Edit
		want Span
	}{
		{"before edit", Span{2, 5}, Edit{10, 12, "xxxx"}, Span{2, 5}},
		{"after insert", Span{10, 14}, Edit{2, 2, "ab"}, Span{12, 16}},
		{"after delete", Span{10, 14}, Edit{2, 6, ""}, Span{6, 10}},
		{"edit inside", Span{2, 10}, Edit{4, 6, "xxxx"}, Span{2, 12}},
		{"swallowed", Span{4, 6}, Edit{2, 10, ""}, Span{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Reindex(tt.edit); got != tt.want {
				t.Errorf("Reindex = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDocument_TrailingWhitespaceOnBeginLine(t *testing.T) {
	// The begin-line regex trims trailing whitespace from the tail; the
	// inline span must stay anchored to the tail itself.
	doc := mustParse(t, "#+begin_src python :path x.py  \nprint(1)\n#+end_src\n")
	b := doc.Blocks[0]

	if b.Language != "python" {
		t.Errorf("Language = %q", b.Language)
	}
	if got := doc.InlineParams(b); got != ":path x.py" {
		t.Errorf("InlineParams = %q, want %q", got, ":path x.py")
	}

	// Language-only begin line with trailing whitespace: no inline params.
	doc = mustParse(t, "#+begin_src python\t\nprint(1)\n#+end_src\n")
	if got := doc.InlineParams(doc.Blocks[0]); got != "" {
		t.Errorf("InlineParams = %q, want empty", got)
	}

	// Same for a non-src block.
	doc = mustParse(t, "#+begin_transclusion :link file:/x \t\n#+end_transclusion\n")
	if got := doc.InlineParams(doc.Blocks[0]); got != ":link file:/x" {
		t.Errorf("InlineParams = %q, want %q", got, ":link file:/x")
	}
}
