package model

import (
	"fmt"
	"math"
)

// Границы плоскости (height level). Уровни 0..3, как в клиенте.
const (
	MinPlane = 0
	MaxPlane = 3
)

// Position — координата тайла в мире.
// Value type, передаётся по значению (immutable). Сравнение через ==,
// пригоден как ключ map (равенство и хэш по всем трём полям).
type Position struct {
	X     int32
	Y     int32
	Plane int8
}

// NewPosition создаёт Position с указанными координатами.
func NewPosition(x, y int32, plane int8) Position {
	return Position{X: x, Y: y, Plane: plane}
}

// Valid сообщает, лежит ли плоскость в допустимом диапазоне.
func (p Position) Valid() bool {
	return p.Plane >= MinPlane && p.Plane <= MaxPlane
}

// ChebyshevDistance возвращает планарное расстояние max(|dx|, |dy|).
// Плоскость не учитывается. Результат насыщается до math.MaxInt32.
func (p Position) ChebyshevDistance(other Position) int32 {
	dx := abs64(int64(p.X) - int64(other.X))
	dy := abs64(int64(p.Y) - int64(other.Y))
	return int32(min(max(dx, dy), math.MaxInt32))
}

// WithinDistance проверяет, что other находится в пределах radius тайлов
// (включительно) по метрике Чебышёва. Плоскость сравнивается отдельно через SamePlane.
func (p Position) WithinDistance(other Position, radius int32) bool {
	if radius < 0 {
		return false
	}
	return p.ChebyshevDistance(other) <= radius
}

// SamePlane сообщает, находятся ли обе позиции на одном уровне высоты.
func (p Position) SamePlane(other Position) bool {
	return p.Plane == other.Plane
}

// Translate возвращает новую позицию, смещённую на (dx, dy) в той же плоскости.
func (p Position) Translate(dx, dy int32) Position {
	p.X += dx
	p.Y += dy
	return p
}

// WithPlane возвращает копию позиции на другом уровне высоты.
func (p Position) WithPlane(plane int8) Position {
	p.Plane = plane
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Plane)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
