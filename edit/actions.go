package edit

import (
	"github.com/eivinsam/draftex-sub000/caret"
	"github.com/eivinsam/draftex-sub000/tree"
)

// InsertRune inserts s at c's current position and advances past it,
// recording the edit on h. Grounded on draftex.cpp's Caret::insertText.
func InsertRune(h *History, c *caret.Caret, s string) bool {
	t := c.Current.Node
	if t == nil {
		return false
	}
	h.Do(InsertText{Target: t, Offset: c.Current.Offset, Value: s})
	c.Current.Offset += len([]rune(s))
	c.ResetStart()
	return true
}

// InsertSpaceAt inserts s into c's current node's space_after at the
// caret, used when the caret sits at the end of a node (there is no
// following Text to extend). Grounded on draftex.cpp's
// Caret::insertSpace.
func InsertSpaceAt(h *History, c *caret.Caret, s string) {
	h.Do(InsertSpace{Target: c.Current.Node, Value: s})
	c.ResetStart()
}

// EraseNext deletes the rune following c's position (the "Delete" key),
// merging the following node into the current one when the deletion
// crosses a node boundary so no empty Text is left dangling, matching
// draftex.cpp's Caret::eraseNext / check_for_deletion.
func EraseNext(h *History, c *caret.Caret) bool {
	t := c.Current.Node
	if t == nil {
		return false
	}
	r := []rune(t.Value)
	if c.Current.Offset < len(r) {
		h.Do(RemoveText{Target: t, Offset: c.Current.Offset, Length: 1})
		c.ResetStart()
		return true
	}
	return mergeWithNext(h, c, t)
}

// ErasePrev deletes the rune preceding c's position (Backspace).
func ErasePrev(h *History, c *caret.Caret) bool {
	t := c.Current.Node
	if t == nil {
		return false
	}
	if c.Current.Offset > 0 {
		h.Do(RemoveText{Target: t, Offset: c.Current.Offset - 1, Length: 1})
		c.Current.Offset--
		c.ResetStart()
		return true
	}
	prevText := tree.PrevText(t)
	if prevText == nil {
		return false
	}
	offset := len([]rune(prevText.Value))
	if ok := mergeWithNext(h, newCaretAt(prevText), prevText); !ok {
		return false
	}
	c.Current = caretPosition(prevText, offset)
	c.ResetStart()
	return true
}

func newCaretAt(t *tree.Text) *caret.Caret {
	return caret.New(caret.Position{Node: t, Offset: leafLen(t)})
}

func caretPosition(t *tree.Text, offset int) caret.Position {
	return caret.Position{Node: t, Offset: offset}
}

func leafLen(t *tree.Text) int {
	if t == nil {
		return 0
	}
	return len([]rune(t.Value))
}

// mergeWithNext appends the following Text sibling's value onto t and
// removes that sibling (and the space that separated them), the
// trailing-boundary case of EraseNext: deleting "past the end" of a node
// means deleting the separator and joining the two runs. tree.NextText
// skips transparently over any Command or named Group in between, since
// EnforceRules guarantees one always flanks them.
func mergeWithNext(h *History, c *caret.Caret, t *tree.Text) bool {
	nextText := tree.NextText(t)
	if nextText == nil || nextText.Parent() == nil {
		return false
	}
	ops := Sequence{}
	if sp := t.SpaceAfter(); sp != "" {
		ops = append(ops, RemoveSpace{Target: t, Length: len(sp)})
	}
	ops = append(ops, RemoveNode{Parent: nextText.Parent(), Child: nextText})
	ops = append(ops, InsertText{Target: t, Offset: len([]rune(t.Value)), Value: nextText.Value})
	h.Do(ops)
	c.ResetStart()
	return true
}

// EraseSelection removes every node between c.Start and c.Current
// (inclusive of the partial runs at each end), collapsing the selection
// to a single caret afterward. Grounded on draftex.cpp's
// Caret::eraseSelection.
func EraseSelection(h *History, c *caret.Caret) bool {
	if !c.HasSelection() {
		return false
	}
	from, to := c.Start, c.Current
	if nodeOrder(from.Node, to.Node) > 0 || (from.Node == to.Node && from.Offset > to.Offset) {
		from, to = to, from
	}
	if from.Node == to.Node {
		t := from.Node
		h.Do(RemoveText{Target: t, Offset: from.Offset, Length: to.Offset - from.Offset})
		c.Current = caret.Position{Node: t, Offset: from.Offset}
		c.ResetStart()
		return true
	}

	var ops Sequence
	if r := []rune(from.Node.Value); from.Offset < len(r) {
		ops = append(ops, RemoveText{Target: from.Node, Offset: from.Offset, Length: len(r) - from.Offset})
	}
	// Every node strictly between the two endpoints is removed outright,
	// Text, Command, or Group alike: a selection spans document order, not
	// just Text-to-Text, so the general leaf walk (not NextText) is the
	// right traversal here.
	for n := tree.NextLeaf(from.Node); n != nil && n != to.Node; {
		next := tree.NextLeaf(n)
		if parent := n.Parent(); parent != nil {
			ops = append(ops, RemoveNode{Parent: parent, Child: n})
		}
		n = next
	}
	if to.Offset > 0 {
		ops = append(ops, RemoveText{Target: to.Node, Offset: 0, Length: to.Offset})
	}
	h.Do(ops)
	c.Current = from
	c.ResetStart()
	return true
}

// nodeOrder reports -1, 0, or 1 according to whether a precedes, equals,
// or follows b in document order, walking forward from a.
func nodeOrder(a, b tree.Node) int {
	if a == b {
		return 0
	}
	for n := a; n != nil; n = tree.NextLeaf(n) {
		if n == b {
			return -1
		}
	}
	return 1
}

// BreakParagraph splits the enclosing Par at the caret, producing two
// sibling Pars, matching draftex.cpp's Caret::breakParagraph three-way
// split (at the start, in the middle of a Text node, or at the end).
func BreakParagraph(h *History, c *caret.Caret) bool {
	par := tree.Par(c.Current.Node)
	if par == nil {
		return false
	}
	grandparent := par.Parent()
	if grandparent == nil {
		return false
	}
	newPar := tree.MakeGroup("")
	newPar.Kind = tree.KindPar

	var ops Sequence
	ops = append(ops, InsertNode{Parent: grandparent, Before: par.Next(), Child: newPar})

	t := c.Current.Node
	r := []rune(t.Value)
	if c.Current.Offset > 0 && c.Current.Offset < len(r) {
		tail := string(r[c.Current.Offset:])
		ops = append(ops, RemoveText{Target: t, Offset: c.Current.Offset, Length: len(r) - c.Current.Offset})
		tailNode := &tree.Text{Value: tail}
		ops = append(ops, InsertNode{Parent: newPar, Before: nil, Child: tailNode})
		movePoint := t.Next()
		for n := movePoint; n != nil; {
			next := n.Next()
			ops = append(ops, RemoveNode{Parent: par, Child: n})
			ops = append(ops, InsertNode{Parent: newPar, Before: nil, Child: n})
			n = next
		}
	} else {
		var startNode tree.Node = t
		if c.Current.Offset >= len(r) {
			startNode = t.Next()
		}
		for n := startNode; n != nil; {
			next := n.Next()
			ops = append(ops, RemoveNode{Parent: par, Child: n})
			ops = append(ops, InsertNode{Parent: newPar, Before: nil, Child: n})
			n = next
		}
	}

	h.Do(ops)
	if first := firstLeafOfGroup(newPar); first != nil {
		c.Current = caret.Position{Node: first, Offset: 0}
		c.ResetStart()
	}
	return true
}

// firstLeafOfGroup returns the first Text node reachable in document
// order from g, descending into Groups and skipping past any Command
// along the way, matching the Text-only caret model (caret/caret.go).
func firstLeafOfGroup(g *tree.Group) *tree.Text {
	if g.First() == nil {
		return nil
	}
	if t, ok := g.First().(*tree.Text); ok {
		return t
	}
	return tree.NextText(g.First())
}
