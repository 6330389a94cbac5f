package domain

import (
	"fmt"
	"strings"
)

// Workflow is an explicit transition table over BugStatus.
type Workflow struct {
	name        string
	transitions map[BugStatus][]BugStatus
}

// ForwardWorkflow allows forward and sideways moves, skips included.
// Completed bugs stay completed.
var ForwardWorkflow = Workflow{
	name: "forward",
	transitions: map[BugStatus][]BugStatus{
		StatusReported:   {StatusReported, StatusProcessing, StatusCompleted},
		StatusProcessing: {StatusProcessing, StatusCompleted},
		StatusCompleted:  {StatusCompleted},
	},
}

// PermissiveWorkflow lets a bug move between any two statuses.
var PermissiveWorkflow = Workflow{
	name: "permissive",
	transitions: map[BugStatus][]BugStatus{
		StatusReported:   Statuses,
		StatusProcessing: Statuses,
		StatusCompleted:  Statuses,
	},
}

// WorkflowByName resolves a configured workflow name.
func WorkflowByName(name string) (Workflow, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ForwardWorkflow.name:
		return ForwardWorkflow, nil
	case PermissiveWorkflow.name:
		return PermissiveWorkflow, nil
	}
	return Workflow{}, fmt.Errorf("unknown workflow %q", name)
}

// Name returns the configured name of the workflow.
func (w Workflow) Name() string { return w.name }

// CanTransition reports whether a bug in status from may move to status to.
func (w Workflow) CanTransition(from, to BugStatus) bool {
	for _, allowed := range w.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
