package geo

import (
	"errors"
	"fmt"
)

// Grid is the read-only passability contract the navigator searches over.
// Implementations must not be mutated while a search is running.
type Grid interface {
	// Width is the number of columns; it keys the closed set.
	Width() int
	// Passable reports whether one orthogonal step from (x, y) in d is allowed.
	Passable(x, y int, d Direction) bool
	// PassableDiagonally reports whether the diagonal step from (x, y)
	// combining horz and vert is allowed.
	PassableDiagonally(x, y int, horz, vert Direction) bool
}

// Map is a rectangular tile grid with per-cell NSWE exit masks.
// A cell with mask NSWENone is a wall.
type Map struct {
	width    int
	height   int
	nswe     []byte
	blockers []bool
}

// NewMap creates a width×height map with every cell open in all directions.
func NewMap(width, height int) *Map {
	m := &Map{
		width:    width,
		height:   height,
		nswe:     make([]byte, width*height),
		blockers: make([]bool, width*height),
	}
	for i := range m.nswe {
		m.nswe[i] = NSWEAll
	}
	return m
}

// ErrEmptyLayout is returned by ParseLayout for a layout with no rows.
var ErrEmptyLayout = errors.New("empty map layout")

// ParseLayout builds a Map from text rows ('.' floor, '#' wall, 'B' blocker).
// All rows must have the same length.
func ParseLayout(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	m := NewMap(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != m.width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), m.width)
		}
		for x := range len(row) {
			switch row[x] {
			case TileFloor:
			case TileWall:
				m.SetNSWE(x, y, NSWENone)
			case TileBlocker:
				m.SetNSWE(x, y, NSWENone)
				m.blockers[y*m.width+x] = true
			default:
				return nil, fmt.Errorf("unknown tile %q at (%d,%d)", row[x], x, y)
			}
		}
	}
	return m, nil
}

// Width implements Grid.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// NSWE returns the exit mask of a cell (NSWENone outside the map).
func (m *Map) NSWE(x, y int) byte {
	if !m.InBounds(x, y) {
		return NSWENone
	}
	return m.nswe[y*m.width+x]
}

// SetNSWE replaces the exit mask of a cell. Out-of-bounds writes are ignored.
func (m *Map) SetNSWE(x, y int, nswe byte) {
	if !m.InBounds(x, y) {
		return
	}
	m.nswe[y*m.width+x] = nswe
}

// Walkable reports whether a cell can be occupied.
func (m *Map) Walkable(x, y int) bool {
	return m.NSWE(x, y) != NSWENone
}

// Passable implements Grid. The source cell must allow the exit and the
// destination cell must allow entry from the opposite side.
func (m *Map) Passable(x, y int, d Direction) bool {
	flag := nsweFor(d)
	if flag == NSWENone {
		return false
	}
	if m.NSWE(x, y)&flag == 0 {
		return false
	}
	x2, y2 := Step(x, y, d)
	return m.NSWE(x2, y2)&nsweFor(d.Reverse()) != 0
}

// PassableDiagonally implements Grid: the destination must be reachable
// through at least one of the two L-shaped routes around the corner.
func (m *Map) PassableDiagonally(x, y int, horz, vert Direction) bool {
	hx, _ := horz.Delta()
	_, vy := vert.Delta()
	if hx == 0 || vy == 0 {
		return false
	}
	if !m.Walkable(x+hx, y+vy) {
		return false
	}
	viaVert := m.Passable(x, y, vert) && m.Passable(x, y+vy, horz)
	viaHorz := m.Passable(x, y, horz) && m.Passable(x+hx, y, vert)
	return viaVert || viaHorz
}

// BlocksInteraction reports whether the cell adjacent to (x, y) in d holds
// an interaction blocker.
func (m *Map) BlocksInteraction(x, y int, d Direction) bool {
	if !d.Valid() {
		return false
	}
	x2, y2 := Step(x, y, d)
	if !m.InBounds(x2, y2) {
		return false
	}
	return m.blockers[y2*m.width+x2]
}

// CanStep reports whether one step from (x, y) in d is legal on g.
// A diagonal needs both orthogonal components passable on their own
// in addition to the diagonal check, so corners are never cut.
func CanStep(g Grid, x, y int, d Direction) bool {
	if !d.IsDiagonal() {
		return g.Passable(x, y, d)
	}
	horz, vert := d.Split()
	return g.Passable(x, y, horz) &&
		g.Passable(x, y, vert) &&
		g.PassableDiagonally(x, y, horz, vert)
}
