package geo

// cellKey is the closed-set key of a cell: y*width + x.
func cellKey(x, y, width int) int {
	return y*width + x
}

// heuristic is the integer diagonal distance min(dx,dy)*3/2 + |dx-dy|.
// It prefers diagonal steps whenever both axes still differ.
func heuristic(x, y, tx, ty int) int {
	dx := abs(x - tx)
	dy := abs(y - ty)
	return min(dx, dy)*3/2 + abs(dx-dy)
}

// nsweFor maps an orthogonal direction to its NSWE exit flag.
func nsweFor(d Direction) byte {
	switch d {
	case DirUp:
		return NSWENorth
	case DirDown:
		return NSWESouth
	case DirLeft:
		return NSWEWest
	case DirRight:
		return NSWEEast
	default:
		return NSWENone
	}
}

// ComputeNSWE computes the NSWE direction from (fromX,fromY) to (toX,toY).
func ComputeNSWE(fromX, fromY, toX, toY int) byte {
	var nswe byte
	if toX > fromX {
		nswe |= NSWEEast
	} else if toX < fromX {
		nswe |= NSWEWest
	}
	if toY > fromY {
		nswe |= NSWESouth
	} else if toY < fromY {
		nswe |= NSWENorth
	}
	return nswe
}

// Distance returns the Chebyshev distance between two cells,
// the number of eight-directional steps on an open grid.
func Distance(x1, y1, x2, y2 int) int {
	return max(abs(x1-x2), abs(y1-y2))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
