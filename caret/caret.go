// Package caret implements the (node, rune offset) cursor abstraction and
// its navigation operations: advance/recede, up/down with a sticky target
// column, home/end, and the stop-finding helpers used by word/paragraph
// movement. Grounded on original_source/src/caret.h and the embedded
// Caret struct in original_source/src/draftex.cpp.
package caret

import (
	"math"

	"github.com/eivinsam/draftex-sub000/layout"
	"github.com/eivinsam/draftex-sub000/tree"
)

// Position is a single point in the document: a Text node and an offset
// into it. Offset counts runes of Value, not bytes; an offset equal to the
// rune count of Value denotes "just after" the node. As in caret.h's
// Position, whose node member is a Text*, a
// caret never rests directly on a Command or Group, since
// tree.EnforceRules (tree/rules.go) guarantees every such node is flanked
// by a Text neighbor to land on instead.
type Position struct {
	Node   *tree.Text
	Offset int
}

func (p Position) textValue() string {
	if p.Node == nil {
		return ""
	}
	return p.Node.Value
}

func (p Position) valid() bool { return p.Node != nil }

// Caret tracks the current editing position, an optional selection
// anchor (Start), and a sticky horizontal target column used across
// vertical (Up/Down) movement, exactly mirroring caret.h's
// current/start/target_x.
type Caret struct {
	Current   Position
	Start     Position
	TargetX   float32 // meaningful only while hasTarget is set
	hasTarget bool
}

// New returns a Caret positioned at pos with no selection and no sticky
// column.
func New(pos Position) *Caret {
	return &Caret{Current: pos, Start: pos}
}

// HasSelection reports whether Start and Current differ, mirroring
// caret.h's hasSelection.
func (c *Caret) HasSelection() bool {
	return c.Start.Node != c.Current.Node || c.Start.Offset != c.Current.Offset
}

// ResetStart collapses the selection by moving Start to Current.
func (c *Caret) ResetStart() { c.Start = c.Current }

func (c *Caret) clearTarget() { c.hasTarget = false }

// Advance moves Current one rune forward, crossing into the next Text
// node (via tree.NextText, which skips transparently over any Command or
// named Group in between — enforceRules guarantees one always flanks
// them, so the walk never needs to stop on one) when it runs off the end
// of the current Text node's value. Mirrors draftex.cpp's Caret::next /
// repairOffset.
func (c *Caret) Advance() bool {
	c.clearTarget()
	if c.Current.Offset < len([]rune(c.Current.textValue())) {
		c.Current.Offset++
		return true
	}
	next := tree.NextText(c.Current.Node)
	if next == nil {
		return false
	}
	c.Current = Position{Node: next, Offset: 0}
	return true
}

// Recede moves Current one rune backward, the mirror of Advance.
func (c *Caret) Recede() bool {
	c.clearTarget()
	if c.Current.Offset > 0 {
		c.Current.Offset--
		return true
	}
	prev := tree.PrevText(c.Current.Node)
	if prev == nil {
		return false
	}
	c.Current = Position{Node: prev, Offset: leafLen(prev)}
	return true
}

func leafLen(t *tree.Text) int {
	if t == nil {
		return 0
	}
	return len([]rune(t.Value))
}

// NextStop moves Current to the next position that is not strictly
// inside a run of ordinary text: the end of the current Text node, or
// the start of the next one. Resolves the "stop semantics" Open Question
// by stopping at Text-node boundaries. Mirrors draftex.cpp's
// Caret::nextStop.
func (c *Caret) NextStop() bool {
	c.clearTarget()
	if n := len([]rune(c.Current.textValue())); c.Current.Offset < n {
		c.Current.Offset = n
		return true
	}
	next := tree.NextText(c.Current.Node)
	if next == nil {
		return false
	}
	c.Current = Position{Node: next, Offset: 0}
	return true
}

// PrevStop is the mirror of NextStop.
func (c *Caret) PrevStop() bool {
	c.clearTarget()
	if c.Current.Offset > 0 {
		c.Current.Offset = 0
		return true
	}
	prev := tree.PrevText(c.Current.Node)
	if prev == nil {
		return false
	}
	c.Current = Position{Node: prev, Offset: leafLen(prev)}
	return true
}

// Home moves Current to the start of its enclosing line (approximated
// here, absent a live line index, as the start of its enclosing Par,
// matching caret.h's documented fallback when no line-break table is
// available).
func (c *Caret) Home() bool {
	c.clearTarget()
	par := tree.Par(c.Current.Node)
	if par == nil {
		return false
	}
	first := firstLeaf(par)
	if first == nil {
		return false
	}
	c.Current = Position{Node: first, Offset: 0}
	return true
}

// End moves Current to the end of its enclosing Par's last leaf.
func (c *Caret) End() bool {
	c.clearTarget()
	par := tree.Par(c.Current.Node)
	if par == nil {
		return false
	}
	last := lastLeaf(par)
	if last == nil {
		return false
	}
	c.Current = Position{Node: last, Offset: leafLen(last)}
	return true
}

// firstLeaf returns the first Text node reachable in document order from
// g, descending into Groups, matching firstLeaf's role before the
// Text-only caret model was restored except that it now skips past any
// non-Text node instead of stopping on it.
func firstLeaf(g *tree.Group) *tree.Text {
	if g.First() == nil {
		return nil
	}
	if t, ok := g.First().(*tree.Text); ok {
		return t
	}
	return tree.NextText(g.First())
}

// lastLeaf is firstLeaf's mirror.
func lastLeaf(g *tree.Group) *tree.Text {
	if g.Last() == nil {
		return nil
	}
	if t, ok := g.Last().(*tree.Text); ok {
		return t
	}
	return tree.PrevText(g.Last())
}

// Up moves Current to the closest position on the line above, tracking
// TargetX across repeated calls so a run of Up/Down presses follows a
// stable column instead of drifting to wherever each line's nearest
// glyph happens to be. Mirrors draftex.cpp's Caret::up; line geometry is
// supplied by the caller (findLine) since Caret has no layout access of
// its own.
func (c *Caret) Up(boxes layout.Boxes, findLine func(current tree.Node) (above []tree.Node, ok bool)) bool {
	return c.moveVertical(boxes, findLine)
}

// Down is Up's mirror; findLine is expected to return the line below
// when called in this direction (the caller distinguishes direction, as
// draftex.cpp's up/down share one findClosestOnLine helper).
func (c *Caret) Down(boxes layout.Boxes, findLine func(current tree.Node) (below []tree.Node, ok bool)) bool {
	return c.moveVertical(boxes, findLine)
}

func (c *Caret) moveVertical(boxes layout.Boxes, findLine func(tree.Node) ([]tree.Node, bool)) bool {
	if !c.hasTarget {
		if b, ok := boxes[c.Current.Node]; ok {
			c.TargetX = b.OffsetX + advanceWithin(boxes, c.Current)
		}
		c.hasTarget = true
	}
	line, ok := findLine(c.Current.Node)
	if !ok || len(line) == 0 {
		return false
	}
	c.Current = FindPlace(boxes, line, c.TargetX)
	return true
}

func advanceWithin(boxes layout.Boxes, pos Position) float32 {
	if pos.Node == nil {
		return 0
	}
	b := boxes[pos.Node]
	if b == nil {
		return 0
	}
	runes := []rune(pos.Node.Value)
	if len(runes) == 0 {
		return 0
	}
	return b.W * float32(pos.Offset) / float32(len(runes))
}

// FindPlace locates the Text node (and rune offset within it) whose
// laid-out position is closest to the target x coordinate on the line.
// Positions inside a Text node are estimated by giving every rune an
// equal share of the node's width; per-glyph advances are not measured.
// line may contain
// Command or Group items (the Line Builder's collected items, see
// layout/lines.go); a click landing on one of those redirects to its
// nearest flanking Text, since a Position is never anything else.
// Grounded on draftex.cpp's Caret::findPlace / findClosestOnLine.
func FindPlace(boxes layout.Boxes, line []tree.Node, x float32) Position {
	var best Position
	bestDist := float32(math.MaxFloat32)
	for _, n := range line {
		b := boxes[n]
		if b == nil {
			continue
		}
		pos, dist := closestOffsetInLine(boxes, n, x-b.OffsetX)
		if dist < bestDist && pos.valid() {
			bestDist = dist
			best = pos
		}
	}
	return best
}

// closestOffsetInLine finds the closest Position to localX within n: for
// a Text node, the rune offset whose estimated x (offset times the node's
// width divided by its rune count) is nearest; for
// anything else (a Command or Group, never a valid Position on its own),
// the nearer of its flanking Text neighbors.
func closestOffsetInLine(boxes layout.Boxes, n tree.Node, localX float32) (Position, float32) {
	t, ok := n.(*tree.Text)
	if !ok {
		b := boxes[n]
		dLeft, dRight := absf(localX), absf(localX)
		if b != nil {
			dRight = absf(localX - b.W)
		}
		if dRight < dLeft {
			if next := tree.NextText(n); next != nil {
				return Position{Node: next, Offset: 0}, dRight
			}
		}
		if prev := tree.PrevText(n); prev != nil {
			return Position{Node: prev, Offset: leafLen(prev)}, dLeft
		}
		return Position{}, dLeft
	}
	runes := []rune(t.Value)
	b := boxes[n]
	if b == nil || len(runes) == 0 {
		return Position{Node: t, Offset: 0}, absf(localX)
	}
	step := b.W / float32(len(runes))
	best := 0
	bestDist := absf(localX)
	for i := 1; i <= len(runes); i++ {
		d := absf(localX - step*float32(i))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return Position{Node: t, Offset: best}, bestDist
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
