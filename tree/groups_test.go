package tree_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/eivinsam/draftex-sub000/tree"
)

func TestMakeGroupDispatch(t *testing.T) {
	tests := []struct {
		name string
		want tree.GroupKind
	}{
		{"frac", tree.KindFrac},
		{"par", tree.KindPar},
		{"root", tree.KindVertical},
		{"document", tree.KindVertical},
		{"itemize", tree.KindPlain},
	}
	for _, tt := range tests {
		g := tree.MakeGroup(tt.name)
		assert.True(t, g.Kind == tt.want, "MakeGroup(%q).Kind = %v, want %v", tt.name, g.Kind, tt.want)
		assert.Equals(t, g.Data, tt.name)
	}
}
