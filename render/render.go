// Package render turns a laid-out tree into draw calls against a
// render.Context, the component spec.md names "Render: Tree → draw
// calls" (10% share). The OS window/event loop and font rasterizer
// behind Context are explicitly out of scope (spec.md §1); this package
// only walks the tree and issues primitive calls. Grounded on the
// tex::Context consumers in original_source/src/tex_node_layout.cpp and
// original_source/src/draftex.cpp's render() overrides.
package render

import (
	"github.com/eivinsam/draftex-sub000/layout"
	"github.com/eivinsam/draftex-sub000/tree"
)

// Color is a small RGB triple; render backends interpret it however they
// draw (ANSI escape, RGBA pixel, etc).
type Color struct{ R, G, B uint8 }

// Context is the drawing surface a render pass targets: font selection
// (inherited from layout.Context, since measuring and drawing share the
// same font handle) plus the primitives needed to paint text and rules.
type Context interface {
	layout.Context
	// DrawText paints s at the given absolute origin in font/color.
	DrawText(origin layout.Point, font layout.Font, s string, color Color)
	// DrawLine paints a straight rule from a to b (used by Frac's bar and
	// selection/caret highlighting).
	DrawLine(a, b layout.Point, color Color)
}

// DefaultColor is used for ordinary text; selection highlighting and the
// caret itself are drawn by the caller on top of a Tree pass (render does
// not know about caret/selection state, keeping it a pure tree→paint
// fold, as in the original's node render() methods).
var DefaultColor = Color{R: 0, G: 0, B: 0}

// Tree walks root (whose Box offsets must already have been computed by
// layout.UpdateLayout) and issues draw calls against con, accumulating
// absolute positions as it descends since each node's Box offset is
// parent-relative.
func Tree(con Context, boxes layout.Boxes, root *tree.Group, origin layout.Point) {
	renderGroupChildren(con, boxes, root, origin, layout.Font{})
}

func render(con Context, boxes layout.Boxes, n tree.Node, parentOrigin layout.Point, font layout.Font) {
	b := boxes[n]
	if b == nil {
		return
	}
	origin := layout.Point{X: parentOrigin.X + b.OffsetX, Y: parentOrigin.Y + b.OffsetY}

	switch v := n.(type) {
	case *tree.Text:
		con.DrawText(origin, font, v.Value, DefaultColor)
	case *tree.Command:
		if v.Name == "frac" && len(v.Args) == 2 {
			con.DrawLine(layout.Point{X: origin.X, Y: origin.Y}, layout.Point{X: origin.X + b.W, Y: origin.Y}, DefaultColor)
			render(con, boxes, v.Args[0], origin, font)
			render(con, boxes, v.Args[1], origin, font)
			break
		}
		con.DrawText(origin, font, `\`+v.Name, DefaultColor)
		for _, arg := range v.Args {
			render(con, boxes, arg, origin, font)
		}
	case *tree.Group:
		renderGroup(con, boxes, v, origin, font)
	}
}

func renderGroup(con Context, boxes layout.Boxes, g *tree.Group, origin layout.Point, font layout.Font) {
	if g.Kind == tree.KindFrac {
		b := boxes[g]
		if b != nil {
			y := origin.Y
			con.DrawLine(layout.Point{X: origin.X, Y: y}, layout.Point{X: origin.X + b.W, Y: y}, DefaultColor)
		}
	}
	renderGroupChildren(con, boxes, g, origin, font)
}

func renderGroupChildren(con Context, boxes layout.Boxes, g *tree.Group, origin layout.Point, font layout.Font) {
	for n := g.First(); n != nil; n = n.Next() {
		render(con, boxes, n, origin, font)
	}
}
