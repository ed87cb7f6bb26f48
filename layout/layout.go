// Package layout implements the two-pass layout engine: a bottom-up size
// pass (UpdateSize) and a top-down offset pass (UpdateLayout), plus the
// paragraph Line Builder that breaks a Par's inline run of
// Text/Command/Group children into left-aligned (not justified) lines
// against a width budget. Grounded on tex_node_layout.cpp (LineBulider, the per-kind
// updateSize/updateLayout formulas) and structurally informed by the
// teacher's layout/layout.go three-pass tag/group/measure engine: both
// compute sizes bottom-up, assign offsets top-down, and break long runs
// into lines against a width.
package layout

import (
	"math"

	"github.com/eivinsam/draftex-sub000/internal/assert"
	"github.com/eivinsam/draftex-sub000/tree"
)

// Font identifies a font family at a given size tier, analogous to
// tex::Font in the original.
type Font struct {
	Type FontType
	Size int // a shift applied relative to a base point size, e.g. -2 for subscripts
}

type FontType int

const (
	FontRoman FontType = iota
	FontItalic
	FontMath
)

// Context is the font-metrics and style-state collaborator threaded
// through both the size and render passes, mirroring tex::Context: it
// knows how wide a run of text is and how tall a line is at a given font.
// It carries no section/subsection counters, and no heading numbers are
// generated during layout. The concrete font backend lives outside this package (see the render
// package); Context only needs measurements, not drawing.
type Context interface {
	// Advance returns the horizontal extent of s set in font.
	Advance(font Font, s string) float32
	// Ptsize returns the line height of font.
	Ptsize(font Font) float32
}

// Box is a node's laid-out extent: width, the distance above and below
// its baseline (so sub/superscripts and fractions can align), and the
// offset of its top-left corner relative to its parent's origin.
type Box struct {
	W, Above, Below float32
	OffsetX, OffsetY float32
	// SpaceW is the advance contributed by the node's trailing
	// space_after, cached here during the size pass (it depends on mode
	// and font, which the offset/line-breaking pass does not carry) so
	// the Line Builder can consult it without needing a Context.
	SpaceW float32
}

func (b Box) Height() float32 { return b.Above + b.Below }

// Align names how content narrower than its width budget is placed:
// AlignMin left-aligns, AlignCenter centres. No function in this package
// takes an Align; the layout passes always left-align.
type Align int

const (
	AlignMin Align = iota
	AlignCenter
)

// Boxes caches the Box computed for each tree.Node by the size pass, and
// is consulted (and extended) by the offset pass. Keyed by identity, not
// embedded on tree.Node, since tree stays render/layout agnostic.
type Boxes map[tree.Node]*Box

func (bs Boxes) of(n tree.Node) *Box {
	b, ok := bs[n]
	if !ok {
		b = &Box{}
		bs[n] = b
	}
	return b
}

// UpdateSize computes the Box (width/above/below) of n and everything
// beneath it, bottom-up, for the given mode/font/available width.
// Grounded on each C++ node kind's updateSize override.
func UpdateSize(con Context, boxes Boxes, n tree.Node, mode tree.Mode, font Font, width float32) {
	switch v := n.(type) {
	case *tree.Text:
		sizeText(con, boxes, v, font)
	case *tree.Command:
		sizeCommand(con, boxes, v, mode, font, width)
	case *tree.Group:
		sizeGroup(con, boxes, v, mode, font, width)
	default:
		assert.That(false, "UpdateSize: unknown node kind %T", n)
	}
	boxes.of(n).SpaceW = spaceWidth(con, font, mode, n.SpaceAfter())
}

func sizeText(con Context, boxes Boxes, t *tree.Text, font Font) {
	b := boxes.of(t)
	b.W = con.Advance(font, t.Value)
	pt := con.Ptsize(font)
	b.Above = pt * 0.7
	b.Below = pt * 0.3
}

func spaceWidth(con Context, font Font, mode tree.Mode, spaceAfter string) float32 {
	if isParagraphBreak(spaceAfter) {
		return 0
	}
	if spaceAfter == "" {
		return 0
	}
	if mode == tree.ModeMath {
		return 0
	}
	return con.Ptsize(font) * 0.25
}

// isParagraphBreak reports whether space contains two or more newlines,
// the blank-line-separates-paragraphs rule from tex_node_layout.cpp's
// Space::collect.
func isParagraphBreak(space string) bool {
	count := 0
	for _, r := range space {
		if r == '\n' {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

func sizeCommand(con Context, boxes Boxes, c *tree.Command, mode tree.Mode, font Font, width float32) {
	if c.Name == "frac" && len(c.Args) == 2 {
		sizeFracArgs(con, boxes, c, font, c.Args[0], c.Args[1])
		return
	}
	for _, arg := range c.Args {
		UpdateSize(con, boxes, arg, mode, font, width)
	}
	b := boxes.of(c)
	b.W = con.Advance(font, `\`+c.Name)
	pt := con.Ptsize(font)
	b.Above = pt * 0.7
	b.Below = pt * 0.3
}

func sizeGroup(con Context, boxes Boxes, g *tree.Group, mode tree.Mode, font Font, width float32) {
	switch g.Kind {
	case tree.KindFrac:
		sizeFrac(con, boxes, g, font)
	case tree.KindVertical:
		sizeVertical(con, boxes, g, mode, font, width)
	case tree.KindPar:
		sizePar(con, boxes, g, mode, font, width)
	default:
		sizePlainGroup(con, boxes, g, mode, font, width)
	}
}

// sizeFrac grounds Frac::updateSize: its two children (the numerator and
// denominator arguments) are laid out in a shifted-down font size and
// stacked, the group's width is the wider of the two.
func sizeFrac(con Context, boxes Boxes, g *tree.Group, font Font) {
	p, q := fracArgs(g)
	if p == nil || q == nil {
		return
	}
	sizeFracArgs(con, boxes, g, font, p, q)
}

// sizeFracArgs is the shared Frac::updateSize math, taking the numerator
// and denominator Groups directly so both the `\begin{frac}` environment
// (sizeFrac, args as g's own children) and the eager-expansion `\frac{}{}`
// command (sizeCommand, args as Command.Args) stack identically rather
// than the command falling back to plain label-width sizing.
func sizeFracArgs(con Context, boxes Boxes, n tree.Node, font Font, p, q *tree.Group) {
	shifted := Font{Type: font.Type, Size: font.Size - 2}
	UpdateSize(con, boxes, p, tree.ModeMath, shifted, math.MaxFloat32)
	UpdateSize(con, boxes, q, tree.ModeMath, shifted, math.MaxFloat32)

	pb, qb := boxes.of(p), boxes.of(q)
	b := boxes.of(n)
	b.W = max32(pb.W, qb.W)
	b.Above = pb.Height()
	b.Below = qb.Height()
}

// fracArgs returns the two argument Groups of an explicit \begin{frac}
// environment: g's first two children, when both are Groups (nil, nil
// otherwise). The \frac command's arguments live in Command.Args and are
// read there directly by sizeCommand and UpdateLayout.
func fracArgs(g *tree.Group) (p, q *tree.Group) {
	if first, ok := g.First().(*tree.Group); ok {
		if second, ok := first.Next().(*tree.Group); ok {
			return first, second
		}
	}
	return nil, nil
}

func sizeVertical(con Context, boxes Boxes, g *tree.Group, mode tree.Mode, font Font, width float32) {
	b := boxes.of(g)
	if g.Data == "document" {
		font.Type = FontRoman
		b.W = min32(width, con.Ptsize(font)*24)
	} else {
		b.W = width
	}
	b.Above, b.Below = 0, 0
	for n := g.First(); n != nil; n = n.Next() {
		UpdateSize(con, boxes, n, mode, font, b.W)
		b.Below += boxes.of(n).Height()
	}
}

func sizePar(con Context, boxes Boxes, g *tree.Group, mode tree.Mode, font Font, width float32) {
	b := boxes.of(g)
	b.W = width
	b.Above = 0
	for n := g.First(); n != nil; n = n.Next() {
		UpdateSize(con, boxes, n, mode, font, width)
	}
	// Height is finalized by UpdateLayout's Line Builder pass, which is
	// the only thing that knows how many lines the content wraps to.
}

func sizePlainGroup(con Context, boxes Boxes, g *tree.Group, mode tree.Mode, font Font, width float32) {
	b := boxes.of(g)
	b.W = 0
	for n := g.First(); n != nil; n = n.Next() {
		UpdateSize(con, boxes, n, mode, font, width)
		nb := boxes.of(n)
		b.W += nb.W + nb.SpaceW
		b.Above = max32(b.Above, nb.Above)
		b.Below = max32(b.Below, nb.Below)
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
