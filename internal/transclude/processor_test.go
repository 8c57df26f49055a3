package transclude

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gggion/org-transclusion-blocks/internal/fetch"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

func newProcessor(opts Options) *Processor {
	r := resolver.New(linktype.New(), resolver.Options{ShowWarnings: opts.ShowWarnings})
	d := fetch.NewDispatcher(&fetch.FileFetcher{})
	d.RegisterScheme("file", &fetch.FileFetcher{})
	return New(r, d, opts)
}

func TestProcess_SplicesContent(t *testing.T) {
	src := filepath.Join(t.TempDir(), "snippet.py")
	require.NoError(t, os.WriteFile(src, []byte("print('hi')\n"), 0o644))

	text := strings.Join([]string{
		"#+begin_transclusion :link file:" + src,
		"stale content",
		"#+end_transclusion",
		"",
	}, "\n")
	doc, err := orgdoc.ParseDocument("test.org", text)
	require.NoError(t, err)

	res, err := newProcessor(Options{NoDecorate: true}).Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Resolved)
	assert.Zero(t, res.Failed)

	assert.Contains(t, doc.Text(), "print('hi')\n")
	assert.NotContains(t, doc.Text(), "stale content")
	assert.Contains(t, doc.Text(), "#+end_transclusion")
}

func TestProcess_Decoration(t *testing.T) {
	src := filepath.Join(t.TempDir(), "snippet.py")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))

	text := "#+begin_transclusion :link file:" + src + "\n#+end_transclusion\n"
	doc, err := orgdoc.ParseDocument("test.org", text)
	require.NoError(t, err)

	_, err = newProcessor(Options{}).Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "# transcluded from "+src)
}

func TestProcess_FailureIsolation(t *testing.T) {
	src := filepath.Join(t.TempDir(), "good.txt")
	require.NoError(t, os.WriteFile(src, []byte("good\n"), 0o644))

	text := strings.Join([]string{
		"#+begin_transclusion :link file:/nonexistent/ghost.txt",
		"#+end_transclusion",
		"",
		"#+begin_transclusion :link file:" + src,
		"#+end_transclusion",
		"",
		"#+begin_src python",
		"pass",
		"#+end_src",
		"",
	}, "\n")
	doc, err := orgdoc.ParseDocument("test.org", text)
	require.NoError(t, err)

	res, err := newProcessor(Options{NoDecorate: true}).Process(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Resolved, "the good block still resolves")
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped, "the src block declares no reference")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Line)
	assert.Contains(t, doc.Text(), "good\n")
}

func TestProcess_WarningsGatedByPolicy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "w.txt")
	require.NoError(t, os.WriteFile(src, []byte("a\nb\nc\nd\ne\n"), 0o644))

	text := strings.Join([]string{
		"#+header: :lines 1-2",
		"#+header: :args :lines 4-5",
		"#+begin_transclusion :link file:" + src,
		"#+end_transclusion",
		"",
	}, "\n")

	doc, err := orgdoc.ParseDocument("test.org", text)
	require.NoError(t, err)
	res, err := newProcessor(Options{ShowWarnings: true, NoDecorate: true}).Process(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "redundant")

	doc, err = orgdoc.ParseDocument("test.org", text)
	require.NoError(t, err)
	res, err = newProcessor(Options{NoDecorate: true}).Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}
