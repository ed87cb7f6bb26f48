package layout

import (
	"github.com/eivinsam/draftex-sub000/tree"
)

// Point is a 2D offset in layout units.
type Point struct{ X, Y float32 }

// UpdateLayout assigns n's Box.OffsetX/OffsetY (relative to its parent)
// and recurses into its children, given the offset n itself should be
// placed at. It must run after UpdateSize has populated boxes for the
// whole subtree. Grounded on each C++ node kind's updateLayout override.
func UpdateLayout(boxes Boxes, n tree.Node, offset Point) {
	b := boxes.of(n)
	b.OffsetX, b.OffsetY = offset.X, offset.Y

	switch v := n.(type) {
	case *tree.Command:
		if v.Name == "frac" && len(v.Args) == 2 {
			layoutFracArgs(boxes, b, v.Args[0], v.Args[1])
			break
		}
		for _, arg := range v.Args {
			UpdateLayout(boxes, arg, Point{})
		}
	case *tree.Group:
		switch v.Kind {
		case tree.KindFrac:
			layoutFrac(boxes, v)
		case tree.KindVertical:
			layoutVertical(boxes, v)
		case tree.KindPar:
			layoutPar(boxes, v)
		default:
			layoutPlainGroup(boxes, v)
		}
	}
}

func layoutFrac(boxes Boxes, g *tree.Group) {
	p, q := fracArgs(g)
	if p == nil || q == nil {
		return
	}
	layoutFracArgs(boxes, boxes.of(g), p, q)
}

// layoutFracArgs stacks the numerator p above the denominator q, centered
// on gb's width. Shared by the \begin{frac} environment (layoutFrac) and
// the eager-expansion \frac{}{} command, whose Box is passed in directly
// since a Command has no child list of its own to read Args from.
func layoutFracArgs(boxes Boxes, gb *Box, p, q *tree.Group) {
	pb, qb := boxes.of(p), boxes.of(q)
	UpdateLayout(boxes, p, Point{(gb.W - pb.W) * 0.5, -pb.Below})
	UpdateLayout(boxes, q, Point{(gb.W - qb.W) * 0.5, qb.Above})
}

func layoutVertical(boxes Boxes, g *tree.Group) {
	gb := boxes.of(g)
	var height float32
	for n := g.First(); n != nil; n = n.Next() {
		nb := boxes.of(n)
		UpdateLayout(boxes, n, Point{0, height + nb.Above})
		height += nb.Height()
	}
	gb.Above, gb.Below = 0, height
}

// layoutPar runs the Line Builder over g's inline children, breaking them
// into left-aligned lines: it hands the builder one child at a time,
// collecting while collect() reports true (still on the current line)
// and flushing a line once collection stops (paragraph break, or the
// builder's own width budget).
func layoutPar(boxes Boxes, g *tree.Group) {
	gb := boxes.of(g)
	width := gb.W
	pen := Point{0, 0}

	lb := newLineBuilder(boxes, width)
	n := g.First()
	for n != nil {
		lb.reset()
		collected := lb.collect(n)
		if collected {
			n = n.Next()
			for n != nil && lb.collect(n) {
				n = n.Next()
			}
			pen.Y = lb.place(pen)
			if n == nil {
				break
			}
			continue
		}
		UpdateLayout(boxes, n, pen)
		pen.Y += boxes.of(n).Height()
		n = n.Next()
	}
	gb.Below = pen.Y
	gb.Above = 0
}

func layoutPlainGroup(boxes Boxes, g *tree.Group) {
	gb := boxes.of(g)
	var x float32
	for n := g.First(); n != nil; n = n.Next() {
		nb := boxes.of(n)
		UpdateLayout(boxes, n, Point{x, gb.Above - nb.Above})
		x += nb.W
	}
}

// lineBuilder breaks a run of inline nodes into justified lines against a
// width budget, grounded on tex_node_layout.cpp's LineBulider:
// reset/skipSpaces/collectLine/unwindEndSpace/position. A Par is laid out
// by repeatedly running one line at a time (layoutPar above) rather than
// collecting the whole paragraph up front, matching the original's
// incremental one-line-at-a-time loop.
type lineBuilder struct {
	boxes Boxes
	width float32
	used  float32
	items []lineItem
}

// lineItem is one collected leaf together with the space_after width it
// should contribute between it and whatever the line collects next. For
// a leaf that is the last child deep-collected out of a non-Par Group,
// that is the enclosing group's own space_after (see collectGroup), not
// the leaf's own (which is usually empty, since the tokenizer attaches
// the space following a closing delimiter to the group, not its last
// child).
type lineItem struct {
	node   tree.Node
	spaceW float32
}

func newLineBuilder(boxes Boxes, width float32) *lineBuilder {
	return &lineBuilder{boxes: boxes, width: width}
}

// reset clears the builder's accumulated line. Whitespace lives in each
// node's space_after rather than in nodes of its own, so there are no
// leading space nodes for it to skip.
func (lb *lineBuilder) reset() {
	lb.used = 0
	lb.items = lb.items[:0]
}

// collect adds n to the current line if it still fits within width,
// returning false once the line should be flushed: either n doesn't fit
// (word wrap) or n's space_after signals a paragraph break. It mirrors
// tex_node_layout.cpp's Node::collect / Group::collect / Space::collect
// trio: ordinary nodes always collect (the line only breaks on space),
// Space collects but reports false (ending the line) when it separates
// paragraphs. A Group other than a Par or a Frac is deep-collected:
// Group::collect never pushes the group itself, only recurses into its
// children, so a curly group or a math span is transparent to line
// breaking and its Text leaves wrap individually instead of the group
// being one atomic box. A \begin{frac} environment is collected as one
// box, like the \frac command, so that it keeps its stacked layout.
func (lb *lineBuilder) collect(n tree.Node) bool {
	if g, ok := n.(*tree.Group); ok && g.Kind != tree.KindPar && g.Kind != tree.KindFrac {
		return lb.collectGroup(g)
	}
	return lb.collectLeaf(n)
}

// collectGroup recurses into g's children in document order, folding g's
// own trailing space_after (attached to the group node itself, after its
// closing delimiter, rather than to its last child) into whichever leaf
// collection ends on.
func (lb *lineBuilder) collectGroup(g *tree.Group) bool {
	c := g.First()
	if c == nil {
		return lb.endsGroup(g)
	}
	for c != nil {
		next := c.Next()
		if !lb.collect(c) {
			return false
		}
		if next == nil {
			return lb.endsGroup(g)
		}
		c = next
	}
	return true
}

// endsGroup applies g's own space_after once every item deep-collected
// from g has been folded into the line, overriding the space_after
// recorded for the last such item (g's closing delimiter's trailing
// whitespace belongs to g, not to whatever leaf happened to end up
// last), and ending the line if it is a paragraph break.
func (lb *lineBuilder) endsGroup(g *tree.Group) bool {
	spaceW := lb.boxes.of(g).SpaceW
	if isParagraphBreak(g.SpaceAfter()) {
		return false
	}
	if n := len(lb.items); n > 0 {
		lb.used += spaceW - lb.items[n-1].spaceW
		lb.items[n-1].spaceW = spaceW
	} else {
		lb.used += spaceW
	}
	return true
}

// collectLeaf is the ordinary Node::collect case: it always appends
// (unless doing so would overflow an already-nonempty line) and reports
// whether the line continues past n's own space_after.
func (lb *lineBuilder) collectLeaf(n tree.Node) bool {
	nb := lb.boxes.of(n)
	width := nb.W
	if lb.used+width > lb.width && len(lb.items) > 0 {
		return false
	}
	lb.items = append(lb.items, lineItem{node: n, spaceW: nb.SpaceW})
	lb.used += width
	if isParagraphBreak(n.SpaceAfter()) {
		return false
	}
	lb.used += nb.SpaceW
	return true
}

// place lays out the collected line starting at pen, word-spacing each
// node left to right (unwindEndSpace: trailing space on the line's last
// node contributes no width to the line's extent), and returns the Y
// offset the next line should start at. Every line is left-aligned with
// its natural spacing: leftover width is not spread across the spaces of
// non-final lines, so lines are not justified.
func (lb *lineBuilder) place(pen Point) float32 {
	var x float32
	var above, below float32
	for i, item := range lb.items {
		nb := lb.boxes.of(item.node)
		above = max32(above, nb.Above)
		below = max32(below, nb.Below)
		UpdateLayout(lb.boxes, item.node, Point{x, 0})
		x += nb.W
		if i < len(lb.items)-1 {
			x += item.spaceW
		}
	}
	// Re-home each node's Y now that the line's shared baseline (above)
	// is known.
	for _, item := range lb.items {
		nb := lb.boxes.of(item.node)
		nb.OffsetY = pen.Y + above - nb.Above
	}
	return pen.Y + above + below
}
