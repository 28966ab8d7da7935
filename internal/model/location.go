package model

import "github.com/udisondev/skirmish/internal/game/geo"

// Location представляет клетку на тайловой сетке.
// Value type, передаётся по значению (immutable).
type Location struct {
	X int
	Y int
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

// Step возвращает соседнюю клетку в направлении d (immutable pattern).
func (l Location) Step(d geo.Direction) Location {
	l.X, l.Y = geo.Step(l.X, l.Y, d)
	return l
}

// Distance возвращает число шагов до другой клетки при 8-направленном движении.
func (l Location) Distance(other Location) int {
	return geo.Distance(l.X, l.Y, other.X, other.Y)
}

// DirectionTo возвращает направление единичного шага к соседней клетке
// (DirUnknown если клетка не соседняя).
func (l Location) DirectionTo(other Location) geo.Direction {
	return geo.FromDelta(other.X-l.X, other.Y-l.Y)
}
