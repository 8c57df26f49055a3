package httplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

func TestRegister(t *testing.T) {
	reg := linktype.New()
	(&Module{}).Register(reg)

	_, ok := reg.Validator("CheckURLSyntax")
	assert.True(t, ok)
	_, ok = reg.Validator("CheckURLSemantic")
	assert.True(t, ok)
	_, ok = reg.Constructor("BuildHTTPLink")
	assert.True(t, ok)
}

func TestCheckURLSyntax(t *testing.T) {
	assert.NoError(t, CheckURLSyntax("https://example.com/a.txt", "arg-url", "http"))
	// Unexpanded variables defer judgement to the semantic phase.
	assert.NoError(t, CheckURLSyntax("https://$host/a.txt", "arg-url", "http"))

	assert.Error(t, CheckURLSyntax("", "arg-url", "http"))
	assert.Error(t, CheckURLSyntax("ftp://example.com/a", "arg-url", "http"))
	assert.Error(t, CheckURLSyntax("not a url", "arg-url", "http"))
}

func TestCheckURLSemantic(t *testing.T) {
	assert.NoError(t, CheckURLSemantic("http://example.com", "arg-url", "http"))

	err := CheckURLSemantic("https://$host/a.txt", "arg-url", "http")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpanded variable")

	assert.Error(t, CheckURLSemantic("https:///nohost", "arg-url", "http"))
}

func TestBuildHTTPLink(t *testing.T) {
	ref, err := BuildHTTPLink(map[string]string{"url": "https://example.com/x"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", ref)

	_, err = BuildHTTPLink(map[string]string{})
	assert.Error(t, err)
}
