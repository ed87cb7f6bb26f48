package layout_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/eivinsam/draftex-sub000/layout"
	"github.com/eivinsam/draftex-sub000/tree"
)

// fixedContext is a minimal Context fake: every rune advances 1 unit and
// every font is 1 unit tall, enough to exercise the size/offset math
// without depending on a real font backend.
type fixedContext struct{}

func (fixedContext) Advance(font layout.Font, s string) float32 {
	return float32(len([]rune(s)))
}

func (fixedContext) Ptsize(font layout.Font) float32 { return 1 }

func TestUpdateSizeText(t *testing.T) {
	root, _ := tree.Tokenize("hello world")
	tree.EnforceRules(root)

	boxes := layout.Boxes{}
	layout.UpdateSize(fixedContext{}, boxes, root, tree.ModeText, layout.Font{}, 80)

	par := root.First().(*tree.Group)
	first := par.First()
	b := boxes[first]
	assert.True(t, b != nil, "expected a Box for the first leaf")
	assert.Equals(t, b.W, float32(5))
}

func TestUpdateLayoutParBreaksLines(t *testing.T) {
	root, _ := tree.Tokenize("aa bb cc dd")
	tree.EnforceRules(root)

	boxes := layout.Boxes{}
	// A narrow width forces the Line Builder to wrap after roughly two
	// words per line.
	layout.UpdateSize(fixedContext{}, boxes, root, tree.ModeText, layout.Font{}, 6)
	layout.UpdateLayout(boxes, root, layout.Point{})

	par := root.First().(*tree.Group)
	var ys []float32
	for n := par.First(); n != nil; n = n.Next() {
		ys = append(ys, boxes[n].OffsetY)
	}
	assert.True(t, len(ys) == 4, "expected 4 words, got %d", len(ys))
	distinct := map[float32]bool{}
	for _, y := range ys {
		distinct[y] = true
	}
	assert.True(t, len(distinct) > 1, "expected words to be placed on more than one line, got offsets %v", ys)
}

// TestLineBuilderDeepCollectsNestedGroup exercises the review's deep-collect
// requirement: a curly group nested inline in a paragraph must not be
// treated as a single atomic box. Its Text leaves should wrap across lines
// the same as any other word in the paragraph, and the group itself (never
// placed as a line item) should keep its zero-value offset so the leaves'
// own offsets, already expressed in the Par's coordinate frame, are what
// render actually uses.
func TestLineBuilderDeepCollectsNestedGroup(t *testing.T) {
	root, errs := tree.Tokenize("aa {bb cc} dd")
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	tree.EnforceRules(root)

	boxes := layout.Boxes{}
	// Narrow enough that every word lands on its own line.
	layout.UpdateSize(fixedContext{}, boxes, root, tree.ModeText, layout.Font{}, 3)
	layout.UpdateLayout(boxes, root, layout.Point{})

	par := root.First().(*tree.Group)
	aa := par.First()
	group := aa.Next().(*tree.Group)
	dd := group.Next()

	bb := group.First()
	cc := bb.Next()

	assert.True(t, boxes[aa].OffsetY != boxes[bb].OffsetY, "expected \"bb\" on its own line, not sharing \"aa\"'s")
	assert.True(t, boxes[bb].OffsetY != boxes[cc].OffsetY, "expected \"bb\" and \"cc\" to wrap onto separate lines")
	assert.True(t, boxes[cc].OffsetY != boxes[dd].OffsetY, "expected \"dd\" on its own line, not sharing \"cc\"'s")

	gb := boxes[group]
	assert.Equals(t, gb.OffsetX, float32(0), "a deep-collected group is never itself placed as a line item")
	assert.Equals(t, gb.OffsetY, float32(0), "a deep-collected group is never itself placed as a line item")
}

func TestFracStacksArguments(t *testing.T) {
	root, errs := tree.Tokenize(`\begin{frac}{1}{22}\end{frac}`)
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	tree.EnforceRules(root)

	boxes := layout.Boxes{}
	layout.UpdateSize(fixedContext{}, boxes, root, tree.ModeMath, layout.Font{}, 80)
	layout.UpdateLayout(boxes, root, layout.Point{})

	par := root.First().(*tree.Group)
	// EnforceRules puts an empty flanking Text ahead of the frac group.
	frac := par.First().Next().(*tree.Group)
	assert.True(t, frac.Kind == tree.KindFrac, "expected a Frac group")
	fb := boxes[frac]
	assert.True(t, fb.Above > 0 && fb.Below > 0, "expected frac to have both above and below extent, got %+v", fb)
	assert.Equals(t, fb.W, float32(2), "frac width should be the wider argument's width")
}

// TestFracCommandStacksArguments exercises the eager-expansion \frac{}{}
// command form (as opposed to the \begin{frac}...\end{frac} environment
// above): it should stack its two Command.Args the same way, rather than
// falling back to plain \name label sizing.
func TestFracCommandStacksArguments(t *testing.T) {
	root, errs := tree.Tokenize(`\frac{1}{22}`)
	assert.True(t, len(errs) == 0, "unexpected tokenize errors: %v", errs)
	errs = tree.Expand(root)
	assert.True(t, len(errs) == 0, "unexpected expand errors: %v", errs)
	tree.EnforceRules(root)

	boxes := layout.Boxes{}
	layout.UpdateSize(fixedContext{}, boxes, root, tree.ModeMath, layout.Font{}, 80)
	layout.UpdateLayout(boxes, root, layout.Point{})

	par := root.First().(*tree.Group)
	// EnforceRules puts an empty flanking Text ahead of the command.
	cmd := par.First().Next().(*tree.Command)
	assert.Equals(t, cmd.Name, "frac")
	cb := boxes[cmd]
	assert.True(t, cb.Above > 0 && cb.Below > 0, "expected frac command to have both above and below extent, got %+v", cb)
	assert.Equals(t, cb.W, float32(2), "frac width should be the wider argument's width")

	// The numerator and denominator should be stacked (same X-centering
	// axis, different Y), not laid out side by side like a plain command.
	pb, qb := boxes[cmd.Args[0]], boxes[cmd.Args[1]]
	assert.True(t, pb.OffsetY != qb.OffsetY, "expected numerator and denominator on different lines")
}
