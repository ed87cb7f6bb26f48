package tree

import (
	"bufio"
	"io"
)

// Serialize writes root's markup back out to w, losslessly enough that
// Tokenize(Serialize(root)) reproduces an equivalent tree (law L1).
// Grounded on the teacher's buffered Render(io.Writer, Format) dispatch
// in tree.go, adapted from DOT's statement kinds to Text/Command/Group.
func Serialize(w io.Writer, root *Group) error {
	bw := bufio.NewWriter(w)
	serializeChildren(bw, root)
	return bw.Flush()
}

func serializeChildren(w *bufio.Writer, g *Group) {
	for n := g.First(); n != nil; n = n.Next() {
		serializeNode(w, n)
	}
}

func serializeNode(w *bufio.Writer, n Node) {
	switch v := n.(type) {
	case *Text:
		w.WriteString(v.Value)
	case *Command:
		w.WriteByte('\\')
		w.WriteString(v.Name)
		for _, arg := range v.Args {
			serializeGroup(w, arg)
			w.WriteString(arg.SpaceAfter())
		}
	case *Group:
		serializeGroup(w, v)
	}
	w.WriteString(n.SpaceAfter())
}

func serializeGroup(w *bufio.Writer, g *Group) {
	switch g.Kind {
	case KindVertical:
		if g.Data == "document" || g.Data == "root" {
			w.WriteString(`\begin{` + g.Data + `}`)
			serializeChildren(w, g)
			w.WriteString(`\end{` + g.Data + `}`)
			return
		}
	case KindPar:
		// Par is an implicit structural wrapper introduced by
		// EnforceRules; it never appears in markup source, so it
		// serializes as just its children.
		serializeChildren(w, g)
		return
	}
	if g.Data == "math" {
		w.WriteByte('$')
		serializeChildren(w, g)
		w.WriteByte('$')
		return
	}
	if g.Data == "" {
		w.WriteByte('{')
		serializeChildren(w, g)
		w.WriteByte('}')
		return
	}
	w.WriteString(`\begin{` + g.Data + `}`)
	serializeChildren(w, g)
	w.WriteString(`\end{` + g.Data + `}`)
}

// String serializes n's subtree to a string; a convenience wrapper around
// Serialize for tests and diagnostics.
func String(root *Group) string {
	var b stringWriter
	_ = Serialize(&b, root)
	return string(b)
}

type stringWriter []byte

func (s *stringWriter) Write(p []byte) (int, error) {
	*s = append(*s, p...)
	return len(p), nil
}
