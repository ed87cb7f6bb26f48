package edit_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/eivinsam/draftex-sub000/caret"
	"github.com/eivinsam/draftex-sub000/edit"
	"github.com/eivinsam/draftex-sub000/tree"
)

func buildDoc(t *testing.T, src string) (*tree.Group, *tree.Text) {
	t.Helper()
	root, errs := tree.Tokenize(src)
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	tree.EnforceRules(root)
	par := root.First().(*tree.Group)
	first := par.First().(*tree.Text)
	return root, first
}

func TestInsertTextUndoRedo(t *testing.T) {
	_, first := buildDoc(t, "hello")
	var h edit.History

	h.Do(edit.InsertText{Target: first, Offset: 5, Value: "!"})
	assert.Equals(t, first.Value, "hello!")

	assert.True(t, h.Undo(), "Undo should succeed")
	assert.Equals(t, first.Value, "hello")

	assert.True(t, h.Redo(), "Redo should succeed")
	assert.Equals(t, first.Value, "hello!")
}

func TestInsertRuneAdvancesCaret(t *testing.T) {
	_, first := buildDoc(t, "hello")
	c := caret.New(caret.Position{Node: first, Offset: 5})
	var h edit.History

	ok := edit.InsertRune(&h, c, "!")
	assert.True(t, ok, "InsertRune should succeed on a Text caret")
	assert.Equals(t, first.Value, "hello!")
	assert.Equals(t, c.Current.Offset, 6)
}

func TestErasePrevJoinsAcrossBoundary(t *testing.T) {
	par := &tree.Group{Kind: tree.KindPar}
	first := &tree.Text{Value: "hello"}
	second := &tree.Text{Value: "world"}
	par.Append(first)
	par.Append(second)

	c := caret.New(caret.Position{Node: second, Offset: 0})
	var h edit.History
	ok := edit.ErasePrev(&h, c)
	assert.True(t, ok, "ErasePrev across a node boundary should succeed")
	assert.Equals(t, first.Value, "helloworld")
	assert.True(t, par.Len() == 1, "expected the second Text node to be merged away, got %d children", par.Len())
	assert.Equals(t, c.Current.Node, first)
	assert.Equals(t, c.Current.Offset, 5)

	assert.True(t, h.Undo(), "Undo should succeed")
	assert.Equals(t, first.Value, "hello")
	assert.True(t, par.Len() == 2, "expected Undo to restore the second Text node, got %d children", par.Len())
}

func TestEraseSelectionWithinOneNode(t *testing.T) {
	_, first := buildDoc(t, "hello world")
	c := caret.New(caret.Position{Node: first, Offset: 0})
	c.Current.Offset = 5
	c.Start = caret.Position{Node: first, Offset: 0}

	var h edit.History
	ok := edit.EraseSelection(&h, c)
	assert.True(t, ok, "EraseSelection should succeed")
	assert.Equals(t, first.Value, "")
	assert.True(t, h.CanUndo(), "expected the erase to be undoable")

	assert.True(t, h.Undo(), "Undo should succeed")
	assert.Equals(t, first.Value, "hello")
}
