package geo

import "fmt"

// Direction is a numpad-style direction: 2 down, 4 left, 6 right, 8 up,
// 1/3/7/9 the diagonals. Y grows downward.
type Direction int8

const (
	// DirUnknown means no direction could be derived.
	DirUnknown Direction = -1
	// DirNone means no movement is needed (already at the goal).
	DirNone Direction = 0

	DirDownLeft  Direction = 1
	DirDown      Direction = 2
	DirDownRight Direction = 3
	DirLeft      Direction = 4
	DirRight     Direction = 6
	DirUpLeft    Direction = 7
	DirUp        Direction = 8
	DirUpRight   Direction = 9
)

// neighborDirections is the expansion order of the navigator (center skipped).
// Orthogonal steps come first so they win ties against diagonals.
var neighborDirections = [8]Direction{
	DirDown, DirLeft, DirRight, DirUp,
	DirDownLeft, DirDownRight, DirUpLeft, DirUpRight,
}

// Delta returns the cell offset of one step in d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirDownLeft:
		return -1, 1
	case DirDown:
		return 0, 1
	case DirDownRight:
		return 1, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUpLeft:
		return -1, -1
	case DirUp:
		return 0, -1
	case DirUpRight:
		return 1, -1
	default:
		return 0, 0
	}
}

// IsDiagonal reports whether d is one of the four diagonals.
func (d Direction) IsDiagonal() bool {
	switch d {
	case DirDownLeft, DirDownRight, DirUpLeft, DirUpRight:
		return true
	}
	return false
}

// Valid reports whether d is one of the eight movement directions.
func (d Direction) Valid() bool {
	return d >= DirDownLeft && d <= DirUpRight && d != 5
}

// Split decomposes d into its horizontal and vertical components.
// Orthogonal directions return DirNone for the missing component.
func (d Direction) Split() (horz, vert Direction) {
	dx, dy := d.Delta()
	switch {
	case dx < 0:
		horz = DirLeft
	case dx > 0:
		horz = DirRight
	}
	switch {
	case dy < 0:
		vert = DirUp
	case dy > 0:
		vert = DirDown
	}
	return horz, vert
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if !d.Valid() {
		return d
	}
	return 10 - d
}

// Combine joins a horizontal and a vertical component into one direction.
func Combine(horz, vert Direction) Direction {
	hx, _ := horz.Delta()
	_, vy := vert.Delta()
	return FromDelta(hx, vy)
}

// FromDelta converts a unit offset into a direction.
// Offsets outside [-1,1] on either axis yield DirUnknown.
func FromDelta(dx, dy int) Direction {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return DirUnknown
	}
	if dx == 0 && dy == 0 {
		return DirNone
	}
	// numpad: row 1..3 is dy=+1, 4..6 is dy=0, 7..9 is dy=-1
	return Direction(5 + dx - 3*dy)
}

// Step returns the cell reached by moving one step from (x, y) in d.
func Step(x, y int, d Direction) (int, int) {
	dx, dy := d.Delta()
	return x + dx, y + dy
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirUnknown:
		return "unknown"
	case DirNone:
		return "none"
	case DirDownLeft:
		return "down-left"
	case DirDown:
		return "down"
	case DirDownRight:
		return "down-right"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUpLeft:
		return "up-left"
	case DirUp:
		return "up"
	case DirUpRight:
		return "up-right"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}
