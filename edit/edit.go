// Package edit implements reversible edit operations and the undo/redo
// history stack. Grounded on original_source/src/edit.h (Stack<T>,
// Reaction, Do<A>) and the History class embedded in
// original_source/src/draftex.cpp (_undo/_redo stacks, add/undo/redo).
package edit

import (
	"github.com/eivinsam/draftex-sub000/internal/assert"
	"github.com/eivinsam/draftex-sub000/tree"
)

// Op is a reversible edit: Do applies it to the tree and returns its own
// inverse, so History never needs a separate "undo version" of every
// operation. This is edit.h's Reaction/Do<A> pattern as a Go interface
// instead of a template hierarchy.
type Op interface {
	Do() Op
}

// Stack is a LIFO of pending reactions, edit.h's template Stack<T>
// rewritten with a Go generic instead of C++ templates.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

func (s *Stack[T]) Len() int { return len(s.items) }

func (s *Stack[T]) Clear() { s.items = s.items[:0] }

// History records applied operations and lets the caller undo/redo them,
// grounded on draftex.cpp's History class.
type History struct {
	undo Stack[Op]
	redo Stack[Op]
}

// Do applies op, recording its inverse on the undo stack and clearing any
// redo history (a fresh edit invalidates whatever was redoable), matching
// History::add being called right after every successful operation.
func (h *History) Do(op Op) {
	inverse := op.Do()
	h.undo.Push(inverse)
	h.redo.Clear()
}

// Undo pops the most recent operation's inverse, applies it, and pushes
// its own inverse (the original forward operation) onto the redo stack.
// Reports false if there is nothing to undo.
func (h *History) Undo() bool {
	op, ok := h.undo.Pop()
	if !ok {
		return false
	}
	h.redo.Push(op.Do())
	return true
}

// Redo is Undo's mirror.
func (h *History) Redo() bool {
	op, ok := h.redo.Pop()
	if !ok {
		return false
	}
	h.undo.Push(op.Do())
	return true
}

// CanUndo and CanRedo report whether Undo/Redo would do anything.
func (h *History) CanUndo() bool { return h.undo.Len() > 0 }
func (h *History) CanRedo() bool { return h.redo.Len() > 0 }

// InsertText inserts Value at Offset within Target's text, the edit.h
// InsertText/RemoveText pair collapsed into a single reversible op (Do
// returns the complementary RemoveText).
type InsertText struct {
	Target *tree.Text
	Offset int
	Value  string
}

func (op InsertText) Do() Op {
	r := []rune(op.Target.Value)
	assert.That(op.Offset >= 0 && op.Offset <= len(r), "InsertText: offset out of range")
	out := make([]rune, 0, len(r)+len([]rune(op.Value)))
	out = append(out, r[:op.Offset]...)
	out = append(out, []rune(op.Value)...)
	out = append(out, r[op.Offset:]...)
	op.Target.Value = string(out)
	return RemoveText{Target: op.Target, Offset: op.Offset, Length: len([]rune(op.Value))}
}

// RemoveText deletes Length runes starting at Offset from Target's text.
type RemoveText struct {
	Target *tree.Text
	Offset int
	Length int
}

func (op RemoveText) Do() Op {
	r := []rune(op.Target.Value)
	assert.That(op.Offset >= 0 && op.Offset+op.Length <= len(r), "RemoveText: range out of bounds")
	removed := string(r[op.Offset : op.Offset+op.Length])
	out := make([]rune, 0, len(r)-op.Length)
	out = append(out, r[:op.Offset]...)
	out = append(out, r[op.Offset+op.Length:]...)
	op.Target.Value = string(out)
	return InsertText{Target: op.Target, Offset: op.Offset, Value: removed}
}

// InsertSpace and RemoveSpace mutate a node's space_after, mirroring
// edit.h's dedicated space-editing op pair (space is not ordinary text,
// so it gets its own reversible operation rather than reusing
// InsertText/RemoveText on a synthetic node).
type InsertSpace struct {
	Target tree.Node
	Value  string
}

func (op InsertSpace) Do() Op {
	prev := op.Target.SpaceAfter()
	op.Target.SetSpaceAfter(prev + op.Value)
	return RemoveSpace{Target: op.Target, Length: len(op.Value)}
}

// RemoveSpace deletes the trailing Length bytes of Target's space_after.
type RemoveSpace struct {
	Target tree.Node
	Length int
}

func (op RemoveSpace) Do() Op {
	cur := op.Target.SpaceAfter()
	assert.That(op.Length <= len(cur), "RemoveSpace: length exceeds space_after")
	cut := len(cur) - op.Length
	removed := cur[cut:]
	op.Target.SetSpaceAfter(cur[:cut])
	return InsertSpace{Target: op.Target, Value: removed}
}

// InsertNode attaches Child to Parent immediately before Before (nil
// means append at the end), the edit.h InsertNode/RemoveNode pair.
type InsertNode struct {
	Parent *tree.Group
	Before tree.Node
	Child  tree.Node
}

func (op InsertNode) Do() Op {
	if op.Before == nil {
		op.Parent.Append(op.Child)
	} else {
		op.Parent.InsertBefore(op.Before, op.Child)
	}
	return RemoveNode{Parent: op.Parent, Child: op.Child}
}

// RemoveNode detaches Child from Parent, remembering its position (the
// sibling it preceded) so the inverse InsertNode can restore it exactly.
type RemoveNode struct {
	Parent *tree.Group
	Child  tree.Node
}

func (op RemoveNode) Do() Op {
	before := op.Child.Next()
	op.Parent.Detach(op.Child)
	return InsertNode{Parent: op.Parent, Before: before, Child: op.Child}
}

// Sequence composes several Ops into one undo/redo step, applied in order
// and undone in reverse order, matching edit.h's composite reactions
// (e.g. BreakParagraph inserting a new Par and moving nodes into it).
type Sequence []Op

func (seq Sequence) Do() Op {
	inverses := make(Sequence, len(seq))
	for i, op := range seq {
		inverses[len(seq)-1-i] = op.Do()
	}
	return inverses
}
