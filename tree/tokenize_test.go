package tree_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/eivinsam/draftex-sub000/tree"
)

func TestTokenizeRoundTrip(t *testing.T) {
	tests := []string{
		"hello world",
		`\emph{hello} world`,
		`\frac{1}{2}`,
		`\begin{document}hello\end{document}`,
		`a $x+y$ b`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			root, errs := tree.Tokenize(src)
			assert.True(t, len(errs) == 0, "Tokenize(%q) errors = %v", src, errs)

			got := tree.String(root)
			assert.Equals(t, got, src, "round trip of %q", src)
		})
	}
}

func TestTokenizeUnmatchedBrace(t *testing.T) {
	root, errs := tree.Tokenize("hello } world")
	assert.True(t, len(errs) == 1, "expected one error, got %v", errs)
	assert.True(t, root != nil, "expected a usable tree despite the error")
}

func TestTokenizeUnterminatedEnvironment(t *testing.T) {
	_, errs := tree.Tokenize(`\begin{document}hello`)
	assert.True(t, len(errs) == 1, "expected one error for unterminated environment, got %v", errs)
}

func TestTokenizeCommentIsIllFormed(t *testing.T) {
	root, errs := tree.Tokenize("hello % not a comment\nworld")
	assert.True(t, len(errs) == 1, "expected one error for '%%', got %v", errs)
	assert.True(t, root != nil, "expected a usable tree despite the error")

	first, ok := root.First().(*tree.Text)
	assert.True(t, ok, "expected first child to be Text")
	assert.Equals(t, first.Value, "hello")
}

func TestTokenizeSpaceAfter(t *testing.T) {
	root, errs := tree.Tokenize("hello   world")
	assert.True(t, len(errs) == 0, "unexpected errors: %v", errs)

	first, ok := root.First().(*tree.Text)
	assert.True(t, ok, "expected first child to be Text")
	assert.Equals(t, first.Value, "hello")
	assert.Equals(t, first.SpaceAfter(), "   ")
}
