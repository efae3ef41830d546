package loc_test

import (
	"testing"

	"github.com/vuec/compiler/internal/loc"
	"gotest.tools/v3/assert"
)

func TestSpanContains(t *testing.T) {
	parent := loc.Span{Start: 0, End: 10}
	child := loc.Span{Start: 2, End: 5}
	assert.Assert(t, parent.Contains(child))
	assert.Assert(t, !child.Contains(parent))
}

func TestUnion(t *testing.T) {
	a := loc.Span{Start: 3, End: 5}
	b := loc.Span{Start: 1, End: 4}
	assert.Equal(t, loc.Union(a, b), loc.Span{Start: 1, End: 5})
	assert.Equal(t, loc.Union(loc.Span{}, a), a)
}

func TestLineIndexPosition(t *testing.T) {
	src := "ab\ncd\n\nef"
	li := loc.NewLineIndex(src)
	cases := []struct {
		offset int
		want   loc.Position
	}{
		{0, loc.Position{Line: 1, Column: 1}},
		{2, loc.Position{Line: 1, Column: 3}},
		{3, loc.Position{Line: 2, Column: 1}},
		{6, loc.Position{Line: 3, Column: 1}},
		{7, loc.Position{Line: 4, Column: 1}},
		{8, loc.Position{Line: 4, Column: 2}},
	}
	for _, c := range cases {
		assert.Equal(t, li.Position(c.offset), c.want)
	}
}

func TestLineIndexExcerpt(t *testing.T) {
	src := "first\nsecond\nthird"
	li := loc.NewLineIndex(src)
	assert.Equal(t, li.Excerpt(src, 7), "second")
}
