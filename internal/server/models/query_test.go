package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 0, ClampLimit(0, 100))
	assert.Equal(t, 10, ClampLimit(NoLimit, 100))
	assert.Equal(t, 10, ClampLimit(-3, 100))
	assert.Equal(t, 25, ClampLimit(25, 100))
	assert.Equal(t, 100, ClampLimit(500, 100))
	assert.Equal(t, 100, ClampLimit(500, 0))
	assert.Equal(t, 5, ClampLimit(NoLimit, 5))
}

func TestPage_Empty(t *testing.T) {
	assert.True(t, Page{}.Empty())
	assert.True(t, Page{Skip: 5}.Empty())
	assert.False(t, Page{Limit: NoLimit}.Empty())
	assert.False(t, Page{Limit: 1}.Empty())
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, Page{Skip: 0, Limit: 10}, PageOf(1, 10))
	assert.Equal(t, Page{Skip: 40, Limit: 20}, PageOf(3, 20))
}
