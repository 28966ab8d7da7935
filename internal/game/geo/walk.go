package geo

// Walk repeatedly queries FindDirection and steps along the answer until the
// goal is reached, a step is blocked or maxSteps is exhausted.
// Returns the directions taken and whether the goal was reached.
func (n *Navigator) Walk(g Grid, fromX, fromY, goalX, goalY, maxSteps int) ([]Direction, bool) {
	x, y := fromX, fromY
	var steps []Direction
	for range maxSteps {
		d := n.FindDirection(g, Request{FromX: x, FromY: y, GoalX: goalX, GoalY: goalY})
		if d == DirNone {
			return steps, true
		}
		if !CanStep(g, x, y, d) {
			return steps, false
		}
		x, y = Step(x, y, d)
		steps = append(steps, d)
	}
	return steps, x == goalX && y == goalY
}
