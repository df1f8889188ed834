package world

import (
	"math"

	"github.com/udisondev/worldguard/internal/model"
)

// Grid constants.
const (
	// ShiftBy - shift by N bits for 2^N tiles per region side (2^3 = 8)
	ShiftBy = 3

	// RegionSize - region side in tiles
	RegionSize = 1 << ShiftBy

	// DefaultViewDistance - tiles a player can see (and load) in each direction
	DefaultViewDistance = 15

	// MaxViewDistance - upper bound for area queries; larger radii are clamped
	MaxViewDistance = 512
)

// RegionCoordinates identifies one grid cell. Height is not part of partitioning:
// all planes of a cell share the same Region.
type RegionCoordinates struct {
	X, Y int32
}

// CoordinatesOf returns the grid cell owning pos.
// Arithmetic shift keeps negative coordinates in the correct cell (-1 >> 3 == -1).
func CoordinatesOf(pos model.Position) RegionCoordinates {
	return RegionCoordinates{
		X: pos.X >> ShiftBy,
		Y: pos.Y >> ShiftBy,
	}
}

// Contains reports whether pos falls inside this cell (any plane).
func (c RegionCoordinates) Contains(pos model.Position) bool {
	return CoordinatesOf(pos) == c
}

// Origin returns the lowest tile of the cell on plane 0.
func (c RegionCoordinates) Origin() model.Position {
	return model.NewPosition(c.X<<ShiftBy, c.Y<<ShiftBy, 0)
}

// clampRadius bounds an area query radius to [0, MaxViewDistance].
func clampRadius(radius int32) int32 {
	return min(max(radius, 0), MaxViewDistance)
}

// cellRange returns inclusive cell bounds covering the Chebyshev square of
// radius tiles around pos. Bounds saturate at the edges of the int32 plane.
func cellRange(pos model.Position, radius int32) (lo, hi RegionCoordinates) {
	r := int64(radius)
	lo = RegionCoordinates{X: cellOf(int64(pos.X) - r), Y: cellOf(int64(pos.Y) - r)}
	hi = RegionCoordinates{X: cellOf(int64(pos.X) + r), Y: cellOf(int64(pos.Y) + r)}
	return lo, hi
}

func cellOf(tile int64) int32 {
	tile = min(max(tile, math.MinInt32), math.MaxInt32)
	return int32(tile) >> ShiftBy
}

// cellSpan returns the number of cells in [lo, hi].
func cellSpan(lo, hi RegionCoordinates) int64 {
	return (int64(hi.X) - int64(lo.X) + 1) * (int64(hi.Y) - int64(lo.Y) + 1)
}
