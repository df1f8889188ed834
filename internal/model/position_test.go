package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_WithinDistance(t *testing.T) {
	player := NewPosition(100, 100, 0)

	tests := []struct {
		name   string
		target Position
		radius int32
		want   bool
	}{
		{"same tile", NewPosition(100, 100, 0), 15, true},
		{"exactly 15 east", NewPosition(115, 100, 0), 15, true},
		{"16 east", NewPosition(116, 100, 0), 15, false},
		{"exactly 15 west", NewPosition(85, 100, 0), 15, true},
		{"diagonal 15,15", NewPosition(115, 115, 0), 15, true},
		{"diagonal 15,16", NewPosition(115, 116, 0), 15, false},
		{"other plane ignored", NewPosition(110, 100, 2), 15, true},
		{"zero radius same tile", NewPosition(100, 100, 0), 0, true},
		{"zero radius adjacent", NewPosition(101, 100, 0), 0, false},
		{"negative radius", NewPosition(100, 100, 0), -1, false},
		{"far edge does not wrap", NewPosition(math.MinInt32+100, 100, 0), 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, player.WithinDistance(tt.target, tt.radius))
			// symmetric
			assert.Equal(t, tt.want, tt.target.WithinDistance(player, tt.radius))
		})
	}
}

func TestPosition_ChebyshevDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int32
	}{
		{"x dominant", NewPosition(0, 0, 0), NewPosition(7, 3, 0), 7},
		{"y dominant", NewPosition(0, 0, 0), NewPosition(-2, -9, 0), 9},
		{"negative coords", NewPosition(-10, -10, 0), NewPosition(-4, -12, 0), 6},
		{"opposite edges saturate", NewPosition(math.MaxInt32, 0, 0), NewPosition(math.MinInt32, 0, 0), math.MaxInt32},
		{"edge to origin", NewPosition(0, math.MinInt32, 0), NewPosition(0, 0, 0), math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ChebyshevDistance(tt.b))
		})
	}
}

func TestPosition_ValueSemantics(t *testing.T) {
	p := NewPosition(3200, 3200, 1)
	moved := p.Translate(5, -1)

	assert.Equal(t, NewPosition(3200, 3200, 1), p, "Translate must not mutate receiver")
	assert.Equal(t, NewPosition(3205, 3199, 1), moved)
	assert.Equal(t, NewPosition(3200, 3200, 3), p.WithPlane(3))

	set := map[Position]int{p: 1}
	set[NewPosition(3200, 3200, 1)]++
	assert.Len(t, set, 1, "equal positions must hash equally")
	assert.Equal(t, 2, set[p])
}

func TestPosition_Valid(t *testing.T) {
	assert.True(t, NewPosition(0, 0, MinPlane).Valid())
	assert.True(t, NewPosition(0, 0, MaxPlane).Valid())
	assert.False(t, NewPosition(0, 0, MaxPlane+1).Valid())
	assert.False(t, NewPosition(0, 0, -1).Valid())
}

func TestPosition_SamePlane(t *testing.T) {
	assert.True(t, NewPosition(1, 2, 0).SamePlane(NewPosition(50, 60, 0)))
	assert.False(t, NewPosition(1, 2, 0).SamePlane(NewPosition(1, 2, 1)))
}
