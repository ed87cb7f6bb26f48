package tree

// EnforceRules walks g (recursively) and repairs three structural
// invariants a freshly-tokenized or freshly-edited tree may violate:
//
//  1. Every run of non-Par siblings directly inside a KindVertical group
//     (document/root) is wrapped in an implicit Par, so layout always has
//     a paragraph to line-break within. Grounded on tex_node_groups.cpp's
//     Par being the only group _needs_text_before reports false for —
//     every other context expects to always have a surrounding Par.
//  2. Empty Text nodes introduced by editing (e.g. erasing the last rune
//     of a word) are removed, unless removing them would leave a Group
//     with no children at all to anchor a caret on. Grounded on
//     draftex.cpp's check_for_deletion.
//  3. Nodes that require a text neighbor (any Command, and any named
//     Group other than Par) are flanked by an empty Text node wherever
//     one isn't already there. Grounded on tex_node.cpp's
//     Node::_needs_text_before, which Node::_insert_before and
//     Group::_append consult to insert an empty Text::make("") ahead of
//     such a node; this keeps the caret model (caret/caret.go) Text-only,
//     since a Command or environment Group is otherwise never a valid
//     caret position.
//
// EnforceRules is idempotent: running it twice changes nothing.
func EnforceRules(g *Group) {
	elideEmptyText(g)
	if g.Kind == KindVertical {
		wrapLooseChildrenInPar(g)
	}
	insertFlankingText(g)
	for n := g.First(); n != nil; n = n.Next() {
		if sub, ok := n.(*Group); ok {
			EnforceRules(sub)
		}
	}
}

func elideEmptyText(g *Group) {
	for n := g.First(); n != nil; {
		next := n.Next()
		if t, ok := n.(*Text); ok && t.Value == "" && g.Len() > 1 && !isRequiredFlankingText(t) {
			mergeSpaceIntoPrev(g, t)
			g.Remove(t)
		}
		n = next
	}
}

// needsFlankingText reports whether n must have a Text node immediately
// before it, mirroring tex_node.cpp's _needs_text_before overrides: every
// Command does (a caret can never rest directly on one), as does every
// named Group (a `\begin{name}...\end{name}` environment) other than Par,
// which tex_node_groups.cpp explicitly exempts. A plain curly group
// (Data == "") is not flanked; it is transparent to the caret the same
// way it is transparent to the Line Builder (layout/lines.go).
func needsFlankingText(n Node) bool {
	switch v := n.(type) {
	case *Command:
		return true
	case *Group:
		return v.Kind != KindPar && v.Data != ""
	default:
		return false
	}
}

// insertFlankingText walks g's direct children and inserts an empty Text
// node ahead of any child that needsFlankingText and doesn't already have
// one as its previous sibling. This is a single left-to-right pass rather
// than a symmetric before-and-after check: inserting a flanking Text
// before one child incidentally also flanks the previous child's "after"
// side, matching how _insert_before/_append apply the check in the
// original (see DESIGN.md's Open Question notes).
func insertFlankingText(g *Group) {
	for n := g.First(); n != nil; n = n.Next() {
		if !needsFlankingText(n) {
			continue
		}
		if _, ok := n.Prev().(*Text); ok {
			continue
		}
		g.InsertBefore(n, &Text{Pos: n.Start()})
	}
}

// isRequiredFlankingText reports whether t is standing in as a required
// flanking placeholder (see insertFlankingText) and so must survive
// elideEmptyText even though it is empty, keeping EnforceRules idempotent:
// a second pass must not strip the very placeholder the first pass added.
func isRequiredFlankingText(t *Text) bool {
	return needsFlankingText(t.Next())
}

// mergeSpaceIntoPrev folds t's trailing space_after into its predecessor
// before t is removed, so deleting an empty text node never silently
// drops whitespace that was significant to layout.
func mergeSpaceIntoPrev(g *Group, t *Text) {
	if prev := t.Prev(); prev != nil {
		prev.SetSpaceAfter(prev.SpaceAfter() + t.SpaceAfter())
	}
}

// wrapLooseChildrenInPar groups consecutive non-Par, non-Group-Vertical
// children of g into an implicit Par, leaving existing Par/vertical
// children untouched.
func wrapLooseChildrenInPar(g *Group) {
	var n Node = g.First()
	for n != nil {
		if isParLike(n) {
			n = n.Next()
			continue
		}
		runStart := n
		var runEnd Node = n
		for runEnd.Next() != nil && !isParLike(runEnd.Next()) {
			runEnd = runEnd.Next()
		}
		after := runEnd.Next()

		par := &Group{Pos: runStart.Start(), Kind: KindPar}
		if after != nil {
			g.InsertBefore(after, par)
		} else {
			g.Append(par)
		}
		for cur := runStart; ; {
			advance := cur.Next()
			g.Detach(cur)
			par.Append(cur)
			if cur == runEnd {
				break
			}
			cur = advance
		}
		n = after
	}
}

func isParLike(n Node) bool {
	if sub, ok := n.(*Group); ok {
		return sub.Kind == KindPar || sub.Kind == KindVertical
	}
	return false
}
