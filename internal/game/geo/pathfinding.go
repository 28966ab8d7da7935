package geo

import "container/heap"

// NavigatorOptions tunes the search budget and the greedy fallback.
type NavigatorOptions struct {
	// SearchLimit is the default accumulated-cost budget of one search,
	// used when a Request does not carry its own.
	SearchLimit int
	// DiagonalRatio is the largest max/min axis ratio the greedy fallback
	// still resolves to a diagonal. Below 1 disables greedy diagonals.
	DiagonalRatio float64
}

// DefaultNavigatorOptions returns the stock budget and fallback ratio.
func DefaultNavigatorOptions() NavigatorOptions {
	return NavigatorOptions{
		SearchLimit:   DefaultSearchLimit,
		DiagonalRatio: DefaultDiagonalRatio,
	}
}

// Request is one navigation query. SearchLimit <= 0 uses the navigator default.
type Request struct {
	FromX, FromY int
	GoalX, GoalY int
	SearchLimit  int
}

// Navigator yields the next step toward a goal on a Grid.
// It keeps no state between calls; one Navigator may be shared.
type Navigator struct {
	opts NavigatorOptions
}

// NewNavigator creates a Navigator. Non-positive options fall back to defaults.
func NewNavigator(opts NavigatorOptions) *Navigator {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.DiagonalRatio == 0 {
		opts.DiagonalRatio = DefaultDiagonalRatio
	}
	return &Navigator{opts: opts}
}

// Options returns the navigator configuration.
func (n *Navigator) Options() NavigatorOptions {
	return n.opts
}

// FindDirection runs one bounded best-first search and returns the first
// direction of the best route found.
//
// Returns DirNone when the origin is the goal. When the budget runs out the
// frontier node with the best heuristic is used; when the search discovers
// nothing at all the greedy axis comparison decides. It never fails.
func (n *Navigator) FindDirection(g Grid, req Request) Direction {
	if req.FromX == req.GoalX && req.FromY == req.GoalY {
		return DirNone
	}

	limit := req.SearchLimit
	if limit <= 0 {
		limit = n.opts.SearchLimit
	}

	best := n.search(g, req, limit)
	if best == nil || best.parent == nil {
		return n.Greedy(req.FromX, req.FromY, req.GoalX, req.GoalY)
	}

	// Walk back to the node right after the origin.
	first := best
	for first.parent.parent != nil {
		first = first.parent
	}

	d := FromDelta(first.x-req.FromX, first.y-req.FromY)
	if !d.Valid() {
		return n.Greedy(req.FromX, req.FromY, req.GoalX, req.GoalY)
	}
	return d
}

// Greedy picks a direction from the raw axis deltas, ignoring passability.
// Both axes non-zero and balanced within DiagonalRatio yields a diagonal;
// otherwise the dominant axis wins.
func (n *Navigator) Greedy(fromX, fromY, goalX, goalY int) Direction {
	dx := goalX - fromX
	dy := goalY - fromY

	var horz, vert Direction
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

	ax, ay := abs(dx), abs(dy)
	switch {
	case ax == 0 && ay == 0:
		return DirNone
	case ax == 0:
		return vert
	case ay == 0:
		return horz
	}

	hi, lo := max(ax, ay), min(ax, ay)
	if float64(hi) <= n.opts.DiagonalRatio*float64(lo) {
		return Combine(horz, vert)
	}
	if ax > ay {
		return horz
	}
	return vert
}

// pathNode represents a node in the search graph.
type pathNode struct {
	x, y   int
	parent *pathNode
	g      int // accumulated cost from the origin
	h      int // heuristic to the goal
	f      int // g + h
	seq    int // insertion order, last tie-break
	index  int // heap index
}

// search runs the bounded best-first search. It returns the goal node when
// reached, otherwise the discovered node with the lowest f-g, or nil when
// nothing beyond the origin was discovered.
func (n *Navigator) search(g Grid, req Request, limit int) *pathNode {
	width := g.Width()

	start := &pathNode{x: req.FromX, y: req.FromY}
	start.h = heuristic(start.x, start.y, req.GoalX, req.GoalY)
	start.f = start.h

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	open := make(map[int]*pathNode, 64)
	open[cellKey(start.x, start.y, width)] = start
	closed := make(map[int]struct{}, 64)

	var best *pathNode
	seq := 1

	for openList.Len() > 0 {
		current := heap.Pop(openList).(*pathNode)
		key := cellKey(current.x, current.y, width)
		delete(open, key)

		if current.x == req.GoalX && current.y == req.GoalY {
			return current
		}

		closed[key] = struct{}{}

		// Branch budget exhausted.
		if current.g >= limit {
			continue
		}

		for _, d := range neighborDirections {
			if !CanStep(g, current.x, current.y, d) {
				continue
			}

			nx, ny := Step(current.x, current.y, d)
			nkey := cellKey(nx, ny, width)
			if _, done := closed[nkey]; done {
				continue
			}

			gCost := current.g + 1
			node, queued := open[nkey]
			switch {
			case !queued:
				node = &pathNode{
					x: nx, y: ny,
					parent: current,
					g:      gCost,
					h:      heuristic(nx, ny, req.GoalX, req.GoalY),
					seq:    seq,
				}
				node.f = node.g + node.h
				seq++
				open[nkey] = node
				heap.Push(openList, node)
			case gCost < node.g:
				node.parent = current
				node.g = gCost
				node.f = node.g + node.h
				heap.Fix(openList, node.index)
			default:
				continue
			}

			if best == nil || node.f-node.g < best.f-best.g {
				best = node
			}
		}
	}

	return best
}

// nodeHeap implements container/heap for the open list
// (min-heap by f, then h, then insertion order).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
