package domain

import "strings"

// FilterAll disables a categorical filter. The empty string does the same.
const FilterAll = "all"

// Viewer is the identity a view is computed for.
type Viewer struct {
	ID   string
	Role Role
}

// ViewQuery carries the free-text and categorical filters of a view.
// A nil Viewer skips the visibility rule.
type ViewQuery struct {
	Search   string
	Status   string
	Priority string
	Viewer   *Viewer
}

// View returns the bugs matching q in source order. The search term is
// matched as typed, whitespace included.
func View(bugs []Bug, q ViewQuery) []Bug {
	term := strings.ToLower(q.Search)
	out := make([]Bug, 0, len(bugs))
	for _, b := range bugs {
		if !visibleTo(b, q.Viewer) {
			continue
		}
		if !matchesCategory(string(b.Status), q.Status) || !matchesCategory(string(b.Priority), q.Priority) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(b.Title), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func visibleTo(b Bug, v *Viewer) bool {
	if v == nil || v.Role.Capabilities().CanSeeAllBugs {
		return true
	}
	return b.ReportedBy == v.ID
}

func matchesCategory(value, filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || filter == FilterAll || filter == value
}

// Column is one status bucket of a Board.
type Column struct {
	Status BugStatus
	Bugs   []Bug
}

// Count returns the number of bugs in the column.
func (c Column) Count() int { return len(c.Bugs) }

// Board groups bugs into one column per status, in workflow order.
type Board struct {
	Columns []Column
}

// Total returns the number of bugs across all columns.
func (b Board) Total() int {
	n := 0
	for _, c := range b.Columns {
		n += c.Count()
	}
	return n
}

// Column returns the column for status s.
func (b Board) Column(s BugStatus) Column {
	for _, c := range b.Columns {
		if c.Status == s {
			return c
		}
	}
	return Column{Status: s}
}

// Partition is a stable split of bugs into status columns. Bugs with an
// unknown status are dropped.
func Partition(bugs []Bug) Board {
	idx := make(map[BugStatus]int, len(Statuses))
	board := Board{Columns: make([]Column, len(Statuses))}
	for i, s := range Statuses {
		idx[s] = i
		board.Columns[i] = Column{Status: s, Bugs: []Bug{}}
	}
	for _, b := range bugs {
		i, ok := idx[b.Status]
		if !ok {
			continue
		}
		board.Columns[i].Bugs = append(board.Columns[i].Bugs, b)
	}
	return board
}
