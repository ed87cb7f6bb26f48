// Package tree implements the intrusive, doubly-linked document tree: its
// node kinds (Text, Command, Group), the tokenizer that builds it from
// markup source, command-argument expansion, the enforceRules pass, and
// markup serialization.
package tree

import (
	"strings"

	"github.com/eivinsam/draftex-sub000/internal/assert"
	"github.com/eivinsam/draftex-sub000/token"
)

// Mode tracks whether a subtree is being read as ordinary text or as math.
type Mode int

const (
	ModeText Mode = iota
	ModeMath
)

// Node is the sum type over every kind of tree element. Text, *Command and
// *Group are the only implementations; the unexported marker method keeps
// that closed outside this package.
type Node interface {
	// Parent returns the owning group, or nil for the document root.
	Parent() *Group
	// Next and Prev walk the intrusive sibling list. Prev is a weak
	// back-pointer; Next is the owning forward pointer (see Ref).
	Next() Node
	Prev() Node
	// SpaceAfter returns the inter-token whitespace that followed this
	// node in the source, participating in layout and line collection
	// without being a node of its own.
	SpaceAfter() string
	SetSpaceAfter(string)

	// Start is the source position of the node's first rune.
	Start() token.Position

	nodeMarker()
}

// Ref is the intrusive handle spec.md's NodeRef component names: it carries
// the forward ("owning") and backward ("weak") sibling pointers plus the
// parent back-pointer. Go's garbage collector does the reference counting
// the C++ original did by hand (see SPEC_FULL.md §3); Ref exists so mutation
// sites read the same as the original's append/insert_before/detach.
type Ref struct {
	parent *Group
	next   Node
	prev   Node

	spaceAfter string
}

func (r *Ref) Parent() *Group        { return r.parent }
func (r *Ref) Next() Node            { return r.next }
func (r *Ref) Prev() Node            { return r.prev }
func (r *Ref) SpaceAfter() string    { return r.spaceAfter }
func (r *Ref) SetSpaceAfter(s string) { r.spaceAfter = s }

// Text is a run of ordinary or math text with no further structure.
type Text struct {
	Ref
	Pos   token.Position
	Value string
}

func (t *Text) Start() token.Position { return t.Pos }
func (*Text) nodeMarker()             {}

// Command is a `\name` control sequence, optionally followed by
// expand-time arguments folded into child Groups (see expand.go).
type Command struct {
	Ref
	Pos  token.Position
	Name string
	// Args holds the argument Groups collected by expansion. Args is nil
	// until Expand has run.
	Args []*Group
}

func (c *Command) Start() token.Position { return c.Pos }
func (*Command) nodeMarker()             {}

// NumArgs reports how many arguments c's command name expects, per the
// same small fixed table tex_node.cpp's Command::expand consults.
func (c *Command) NumArgs() int {
	return commandArity[c.Name]
}

// commandArity lists commands that consume following siblings as
// arguments during expansion, and how many. Commands absent from this
// table take zero arguments.
var commandArity = map[string]int{
	"frac":       2,
	"sqrt":       1,
	"section":    1,
	"subsection": 1,
	"emph":       1,
	"textbf":     1,
	"textit":     1,
}

// Group is a bracketed or environment-delimited span of sibling nodes: a
// `{...}` group, a `\begin{name}...\end{name}` environment, or an argument
// group produced by expansion. Kind distinguishes the specialization
// (see groups.go's Group::make-equivalent dispatch); Data carries the
// environment/group name (e.g. "frac", "par", "document", or "" for a
// plain brace group).
type Group struct {
	Ref
	Pos        token.Position
	Data       string
	Kind       GroupKind
	children   Node // head of the intrusive child list
	tail       Node
	numChildren int
}

func (g *Group) Start() token.Position { return g.Pos }
func (*Group) nodeMarker()              {}

// GroupKind distinguishes the specialized group behaviors (layout and
// serialization) dispatched by Group::make (groups.go).
type GroupKind int

const (
	KindPlain GroupKind = iota
	KindFrac
	KindVertical
	KindPar
)

// First returns the first child, or nil if g has none.
func (g *Group) First() Node { return g.children }

// Last returns the last child, or nil if g has none.
func (g *Group) Last() Node { return g.tail }

// Len reports the number of direct children.
func (g *Group) Len() int { return g.numChildren }

// Children returns the direct children in order. Intended for tests and
// debugging; hot paths should walk Next()/Prev() directly.
func (g *Group) Children() []Node {
	out := make([]Node, 0, g.numChildren)
	for n := g.children; n != nil; n = n.Next() {
		out = append(out, n)
	}
	return out
}

// refOf returns the embedded *Ref for any Node implementation, so the
// intrusive-list mutators below can work generically without a type
// switch at every call site.
func refOf(n Node) *Ref {
	switch v := n.(type) {
	case *Text:
		return &v.Ref
	case *Command:
		return &v.Ref
	case *Group:
		return &v.Ref
	default:
		assert.That(false, "unknown node implementation %T", n)
		return nil
	}
}

// Append adds child as g's new last child. O(1).
func (g *Group) Append(child Node) {
	assert.That(child.Parent() == nil, "Append: child already owned")
	r := refOf(child)
	r.parent = g
	r.prev = g.tail
	r.next = nil
	if g.tail != nil {
		refOf(g.tail).next = child
	} else {
		g.children = child
	}
	g.tail = child
	g.numChildren++
}

// InsertBefore inserts child immediately before sibling, which must
// already be a child of g. O(1).
func (g *Group) InsertBefore(sibling, child Node) {
	assert.That(sibling.Parent() == g, "InsertBefore: sibling not owned by g")
	assert.That(child.Parent() == nil, "InsertBefore: child already owned")
	r := refOf(child)
	sr := refOf(sibling)
	r.parent = g
	r.next = sibling
	r.prev = sr.prev
	if sr.prev != nil {
		refOf(sr.prev).next = child
	} else {
		g.children = child
	}
	sr.prev = child
	g.numChildren++
}

// InsertAfter inserts child immediately after sibling, which must already
// be a child of g. O(1).
func (g *Group) InsertAfter(sibling, child Node) {
	assert.That(sibling.Parent() == g, "InsertAfter: sibling not owned by g")
	assert.That(child.Parent() == nil, "InsertAfter: child already owned")
	r := refOf(child)
	sr := refOf(sibling)
	r.parent = g
	r.prev = sibling
	r.next = sr.next
	if sr.next != nil {
		refOf(sr.next).prev = child
	} else {
		g.tail = child
	}
	sr.next = child
	g.numChildren++
}

// Detach removes child from g's child list and clears its ownership
// pointers, returning child so the caller (typically an edit operation,
// see edit.InsertNode's inverse) can re-attach it elsewhere or simply
// drop it. O(1). child remains reachable for as long as the caller holds
// it, standing in for the original's manual reference count.
func (g *Group) Detach(child Node) Node {
	assert.That(child.Parent() == g, "Detach: child not owned by g")
	r := refOf(child)
	if r.prev != nil {
		refOf(r.prev).next = r.next
	} else {
		g.children = r.next
	}
	if r.next != nil {
		refOf(r.next).prev = r.prev
	} else {
		g.tail = r.prev
	}
	r.parent = nil
	r.next = nil
	r.prev = nil
	g.numChildren--
	return child
}

// Remove detaches and discards child; equivalent to Detach but makes the
// call site's intent explicit when the caller has no further use for the
// node (irreversible outside of edit.History).
func (g *Group) Remove(child Node) { g.Detach(child) }

// TextContent concatenates the Value of every Text descendant, joined by
// the space_after between siblings; used by tests.
func (g *Group) TextContent() string {
	var b strings.Builder
	for n := g.First(); n != nil; n = n.Next() {
		switch v := n.(type) {
		case *Text:
			b.WriteString(v.Value)
		case *Group:
			b.WriteString(v.TextContent())
		}
		if n.Next() != nil {
			b.WriteString(n.SpaceAfter())
		}
	}
	return b.String()
}
