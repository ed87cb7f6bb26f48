// Package ansi is a minimal terminal backend for the render package's
// Context interface, used by cmd/draftexctl's preview subcommand. It is
// driver-level demonstration code, not part of the core (spec.md §1
// excludes the rasterizer itself); it exists to give the render package's
// tree-walk a real consumer and to exercise golang.org/x/term for
// terminal-width detection.
package ansi

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/eivinsam/draftex-sub000/layout"
	"github.com/eivinsam/draftex-sub000/render"
)

// CharWidth and LineHeight are the fixed advance/height, in layout units,
// assigned to every glyph and line by this backend: a monospaced
// terminal has no real font metrics to query, so a flat per-rune cost
// approximates one.
const (
	CharWidth  = 1
	LineHeight = 1
)

// Backend writes plain text with ANSI cursor positioning to an io.Writer,
// implementing both layout.Context (measurement) and render.Context
// (drawing).
type Backend struct {
	w     io.Writer
	Width float32
}

// New constructs a Backend writing to w, sized to the real terminal width
// when w is a terminal (via term.GetSize), falling back to 80 columns
// otherwise.
func New(w io.Writer) *Backend {
	width := 80
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}
	return &Backend{w: w, Width: float32(width)}
}

func (b *Backend) Advance(font layout.Font, s string) float32 {
	return float32(len([]rune(s))) * CharWidth
}

func (b *Backend) Ptsize(font layout.Font) float32 { return LineHeight }

func (b *Backend) DrawText(origin layout.Point, font layout.Font, s string, color render.Color) {
	fmt.Fprintf(b.w, "\x1b[%d;%dH%s", int(origin.Y)+1, int(origin.X)+1, s)
}

func (b *Backend) DrawLine(a, c layout.Point, color render.Color) {
	length := int(c.X - a.X)
	if length < 1 {
		length = 1
	}
	bar := make([]byte, length)
	for i := range bar {
		bar[i] = '-'
	}
	fmt.Fprintf(b.w, "\x1b[%d;%dH%s", int(a.Y)+1, int(a.X)+1, bar)
}
