package geo

// CanSee checks line of sight between two cells.
// Every intermediate cell on the Bresenham line must be walkable and each
// move along the line must leave its cell through an open NSWE exit.
// The target cell itself may be opaque.
func (m *Map) CanSee(x1, y1, x2, y2 int) bool {
	if !m.InBounds(x1, y1) || !m.InBounds(x2, y2) {
		return false
	}
	if x1 == x2 && y1 == y2 {
		return true
	}

	it := NewLineIterator(x1, y1, x2, y2)
	it.Next() // skip start point

	prevX, prevY := x1, y1
	for it.Next() {
		curX, curY := it.X(), it.Y()

		if m.NSWE(prevX, prevY)&ComputeNSWE(prevX, prevY, curX, curY) == 0 {
			return false
		}
		if curX == x2 && curY == y2 {
			return true
		}
		if !m.Walkable(curX, curY) {
			return false
		}

		prevX, prevY = curX, curY
	}
	return true
}
