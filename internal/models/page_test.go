package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{6, 7, 8, 9, 10}, 2, PerPage, 12)

	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 1, p.PrevNum)
	assert.Equal(t, 3, p.NextNum)
}

func TestNewPagePastEnd(t *testing.T) {
	p := NewPage[int](nil, 9, PerPage, 12)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.Pages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPageEmptyListing(t *testing.T) {
	p := NewPage[int](nil, 1, PerPage, 0)

	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 5))
	assert.Equal(t, 10, Offset(3, 5))
	assert.Equal(t, 0, Offset(0, 5))

	huge := Offset(math.MaxInt, 5)
	assert.Positive(t, huge)
	assert.Equal(t, huge, Offset(math.MaxInt/5+2, 5))
}
