package domain

import (
	"strings"
	"time"
)

// BugStatus represents the lifecycle state of a bug.
type BugStatus string

const (
	StatusReported   BugStatus = "reported"
	StatusProcessing BugStatus = "processing"
	StatusCompleted  BugStatus = "completed"
)

// Statuses lists the lifecycle states in workflow order.
var Statuses = []BugStatus{StatusReported, StatusProcessing, StatusCompleted}

// IsValid reports whether s is a known status.
func (s BugStatus) IsValid() bool {
	switch s {
	case StatusReported, StatusProcessing, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (BugStatus, error) {
	st := BugStatus(strings.TrimSpace(s))
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Priority is the reporter-assigned urgency of a bug.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is used when a report does not pick one.
const DefaultPriority = PriorityMedium

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParsePriority validates a raw priority string. Empty yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Bug is the core aggregate. JSON field names match the persisted layout.
type Bug struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Steps       string     `json:"steps"`
	Priority    Priority   `json:"priority"`
	Status      BugStatus  `json:"status"`
	ReportedBy  string     `json:"reportedBy"`
	ReportedAt  time.Time  `json:"reportedAt"`
	VerifiedBy  string     `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ApplyTransition returns a copy of b moved to status to. The first move to
// processing stamps VerifiedBy/VerifiedAt with actorID and now; the first move
// to completed stamps CompletedAt. Stamps are never overwritten. No workflow
// policy is checked here, see Workflow.CanTransition.
func ApplyTransition(b Bug, to BugStatus, actorID string, now time.Time) Bug {
	next := b
	if to == StatusProcessing && next.VerifiedBy == "" {
		at := now
		next.VerifiedBy = actorID
		next.VerifiedAt = &at
	}
	if to == StatusCompleted && next.CompletedAt == nil {
		at := now
		next.CompletedAt = &at
	}
	next.Status = to
	return next
}
