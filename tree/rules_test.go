package tree_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/eivinsam/draftex-sub000/tree"
)

func TestEnforceRulesWrapsLooseChildrenInPar(t *testing.T) {
	root, _ := tree.Tokenize("hello world")
	tree.EnforceRules(root)

	assert.True(t, root.Len() == 1, "expected root to have 1 child after wrapping, got %d", root.Len())
	par, ok := root.First().(*tree.Group)
	assert.True(t, ok, "expected the wrapped child to be a Group")
	assert.True(t, par.Kind == tree.KindPar, "expected the wrapped child to be a Par")
	assert.Equals(t, par.TextContent(), "hello world")
}

func TestEnforceRulesIsIdempotent(t *testing.T) {
	root, _ := tree.Tokenize("hello world")
	tree.EnforceRules(root)
	first := tree.String(root)
	tree.EnforceRules(root)
	second := tree.String(root)
	assert.Equals(t, second, first)
}

// TestEnforceRulesInsertsFlankingTextAroundAdjacentCommands exercises the
// review's flanking-text requirement: a caret must never be asked to rest
// directly on a Command, so two Commands with nothing between them each
// need their own preceding empty Text.
func TestEnforceRulesInsertsFlankingTextAroundAdjacentCommands(t *testing.T) {
	root, errs := tree.Tokenize(`\quad\quad`)
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	tree.EnforceRules(root)

	par := root.First().(*tree.Group)
	first, ok := par.First().(*tree.Text)
	assert.True(t, ok, "expected a flanking empty Text before the first \\quad, got %T", par.First())
	assert.Equals(t, first.Value, "")

	firstCmd, ok := first.Next().(*tree.Command)
	assert.True(t, ok, "expected a Command after the flanking Text")
	assert.Equals(t, firstCmd.Name, "quad")

	mid, ok := firstCmd.Next().(*tree.Text)
	assert.True(t, ok, "expected a flanking empty Text between the two adjacent commands, got %T", firstCmd.Next())
	assert.Equals(t, mid.Value, "")

	secondCmd, ok := mid.Next().(*tree.Command)
	assert.True(t, ok, "expected the second Command after the flanking Text")
	assert.Equals(t, secondCmd.Name, "quad")
	assert.True(t, secondCmd.Next() == nil, "expected nothing after the second command")
}

// TestEnforceRulesInsertsFlankingTextAroundNamedGroups covers the
// environment-Group side of the same rule: a `\begin{frac}...\end{frac}`
// sitting immediately next to another such environment, with no
// intervening text, still needs a Text neighbor to land a caret on.
func TestEnforceRulesInsertsFlankingTextAroundNamedGroups(t *testing.T) {
	root, errs := tree.Tokenize(`\begin{frac}{1}{2}\end{frac}\begin{frac}{3}{4}\end{frac}`)
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	tree.EnforceRules(root)

	par := root.First().(*tree.Group)
	first, ok := par.First().(*tree.Text)
	assert.True(t, ok, "expected a flanking empty Text before the first frac group, got %T", par.First())
	assert.Equals(t, first.Value, "")

	firstFrac, ok := first.Next().(*tree.Group)
	assert.True(t, ok, "expected a frac Group after the flanking Text")
	assert.True(t, firstFrac.Kind == tree.KindFrac, "expected KindFrac")

	mid, ok := firstFrac.Next().(*tree.Text)
	assert.True(t, ok, "expected a flanking empty Text between the two adjacent frac groups, got %T", firstFrac.Next())
	assert.Equals(t, mid.Value, "")

	secondFrac, ok := mid.Next().(*tree.Group)
	assert.True(t, ok, "expected the second frac Group after the flanking Text")
	assert.True(t, secondFrac.Kind == tree.KindFrac, "expected KindFrac")
	assert.True(t, secondFrac.Next() == nil, "expected nothing after the second frac group")
}

func TestEnforceRulesElidesEmptyText(t *testing.T) {
	root := &tree.Group{Kind: tree.KindPar}
	a := &tree.Text{Value: "a"}
	empty := &tree.Text{Value: ""}
	b := &tree.Text{Value: "b"}
	root.Append(a)
	root.Append(empty)
	root.Append(b)

	tree.EnforceRules(root)

	assert.True(t, root.Len() == 2, "expected empty text to be elided, got %d children", root.Len())
}
