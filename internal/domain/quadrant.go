package domain

// Quadrant is one of the five display lanes of the matrix
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "do-first"
	QuadrantSchedule  Quadrant = "schedule"
	QuadrantDelegate  Quadrant = "delegate"
	QuadrantEliminate Quadrant = "eliminate"
	QuadrantDone      Quadrant = "done"
)

// AllQuadrants returns the lanes in board order
func AllQuadrants() []Quadrant {
	return []Quadrant{
		QuadrantDoFirst,
		QuadrantSchedule,
		QuadrantDelegate,
		QuadrantEliminate,
		QuadrantDone,
	}
}

// Classify maps a task to its lane. Done wins over the importance and urgency
// flags; the remaining lanes follow the two flags.
func Classify(t Task) Quadrant {
	switch {
	case t.State == StateDone:
		return QuadrantDone
	case t.Important && t.Urgent:
		return QuadrantDoFirst
	case t.Important:
		return QuadrantSchedule
	case t.Urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// Title returns the lane heading
func (q Quadrant) Title() string {
	switch q {
	case QuadrantDoFirst:
		return "Do First"
	case QuadrantSchedule:
		return "Schedule"
	case QuadrantDelegate:
		return "Delegate"
	case QuadrantEliminate:
		return "Eliminate"
	case QuadrantDone:
		return "Done"
	default:
		return string(q)
	}
}

// Description returns the lane subtitle
func (q Quadrant) Description() string {
	switch q {
	case QuadrantDoFirst:
		return "Urgent & Important"
	case QuadrantSchedule:
		return "Not Urgent & Important"
	case QuadrantDelegate:
		return "Urgent & Not Important"
	case QuadrantEliminate:
		return "Not Urgent & Not Important"
	case QuadrantDone:
		return "Completed Tasks"
	default:
		return ""
	}
}

// Flags returns the important and urgent flags a new task needs to land in q.
// ok is false for the done lane, which is reached through state only.
func (q Quadrant) Flags() (important, urgent bool, ok bool) {
	switch q {
	case QuadrantDoFirst:
		return true, true, true
	case QuadrantSchedule:
		return true, false, true
	case QuadrantDelegate:
		return false, true, true
	case QuadrantEliminate:
		return false, false, true
	default:
		return false, false, false
	}
}

// GroupByQuadrant buckets tasks into lanes, keeping input order within a lane
func GroupByQuadrant(tasks []Task) map[Quadrant][]Task {
	lanes := make(map[Quadrant][]Task, len(AllQuadrants()))
	for _, t := range tasks {
		q := Classify(t)
		lanes[q] = append(lanes[q], t)
	}
	return lanes
}
