package tree

import (
	"strconv"

	"github.com/eivinsam/draftex-sub000/internal/assert"
)

// Expand walks root and folds each Command's following siblings into
// argument Groups, per its arity in commandArity. Grounded on
// tex_node.cpp's Command::expand / Text::popArgument / read_optional.
// Expand mutates the tree in place and returns every error it collected
// along the way (e.g. a command running out of siblings to consume).
func Expand(root *Group) []error {
	var errs []error
	expandGroup(root, &errs)
	return errs
}

func expandGroup(g *Group, errs *[]error) {
	for n := g.First(); n != nil; {
		next := n.Next()
		if sub, ok := n.(*Group); ok {
			expandGroup(sub, errs)
		}
		if cmd, ok := n.(*Command); ok {
			next = expandCommand(g, cmd, errs)
		}
		n = next
	}
}

// expandCommand consumes cmd.NumArgs() following siblings of cmd (via
// popArgument) and attaches them as cmd.Args, returning the sibling that
// follows the last consumed argument so the caller's walk can continue.
func expandCommand(parent *Group, cmd *Command, errs *[]error) Node {
	n := cmd.NumArgs()
	cmd.Args = make([]*Group, 0, n)
	after := cmd.Next()
	for i := 0; i < n; i++ {
		arg, rest, ok := popArgument(parent, after)
		if !ok {
			*errs = append(*errs, &ParseError{
				Pos: cmd.Pos,
				Msg: "\\" + cmd.Name + " expects " + strconv.Itoa(n) + " argument(s), found " + strconv.Itoa(i),
			})
			break
		}
		expandGroup(arg, errs)
		cmd.Args = append(cmd.Args, arg)
		after = rest
	}
	return after
}

// popArgument takes the node at the front of the remaining sibling run
// (first) and turns it into an argument Group, detaching it (and, if it
// is a Text node, only its first rune) from parent. It mirrors
// Text::popArgument's two shapes: a `{...}` Group is taken whole, while a
// bare Text node contributes only its first rune as an implicit
// one-token argument.
func popArgument(parent *Group, first Node) (arg *Group, rest Node, ok bool) {
	switch v := first.(type) {
	case nil:
		return nil, nil, false
	case *Group:
		rest = v.Next()
		parent.Detach(v)
		v.Kind = KindPlain
		return v, rest, true
	case *Command:
		rest = v.Next()
		parent.Detach(v)
		g := &Group{Pos: v.Pos, Kind: KindPlain}
		g.Append(v)
		return g, rest, true
	case *Text:
		return popTextArgument(parent, v)
	default:
		assert.That(false, "popArgument: unknown node kind %T", first)
		return nil, nil, false
	}
}

// popTextArgument splits the first rune off of a Text node into its own
// argument Group, leaving any remainder as a new Text sibling, matching
// tex_node.cpp's "command with no braces consumes a single character". An
// empty Text contributes nothing of its own; it is discarded and the
// search forwards to its next sibling, matching Text::popArgument's
// `if (data.empty()) return next->popArgument(dst)`.
func popTextArgument(parent *Group, t *Text) (arg *Group, rest Node, ok bool) {
	if len(t.Value) == 0 {
		next := t.Next()
		parent.Detach(t)
		return popArgument(parent, next)
	}
	r := []rune(t.Value)
	head := string(r[0])
	tail := string(r[1:])

	g := &Group{Pos: t.Pos, Kind: KindPlain}
	headText := &Text{Pos: t.Pos, Value: head}
	g.Append(headText)

	if tail == "" {
		rest = t.Next()
		space := t.SpaceAfter()
		parent.Detach(t)
		g.SetSpaceAfter(space)
		return g, rest, true
	}

	t.Value = tail
	rest = t
	return g, rest, true
}
