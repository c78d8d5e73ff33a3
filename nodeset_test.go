package weft_test

import (
	"slices"
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/stretchr/testify/assert"
)

func TestNodeSet_Algebra(t *testing.T) {
	a := weft.NewNodeSet(1, 3, 5, 7)
	b := weft.NewNodeSet(3, 4, 5)

	assert.Equal(t, []model.NodeIndex{1, 3, 4, 5, 7}, a.Union(b).Slice())
	assert.Equal(t, []model.NodeIndex{3, 5}, a.Intersect(b).Slice())
	assert.Equal(t, []model.NodeIndex{1, 7}, a.Difference(b).Slice())

	// operands untouched
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestNodeSet_Basics(t *testing.T) {
	s := weft.NewNodeSet(9, 2, 2)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(3))
	assert.False(t, s.IsEmpty())
	assert.Equal(t, "{2, 9}", s.String())
	assert.Equal(t, []model.NodeIndex{2, 9}, slices.Collect(s.Iter()))

	c := s.Clone()
	assert.True(t, c.Equal(s))
	assert.False(t, c.Equal(weft.NewNodeSet(2)))

	assert.True(t, weft.NewNodeSet().IsEmpty())
	assert.Equal(t, "{}", weft.NewNodeSet().String())
}

func TestNodeSet_IterStopsEarly(t *testing.T) {
	s := weft.NewNodeSet(1, 2, 3, 4)

	var got []model.NodeIndex
	for idx := range s.Iter() {
		got = append(got, idx)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []model.NodeIndex{1, 2}, got)
}
