package domain

import "time"

// IncidentState enumerates lifecycle states for incidents.
type IncidentState string

const (
	IncidentStatePending    IncidentState = "pending"
	IncidentStateInProgress IncidentState = "in_progress"
	IncidentStateCompleted  IncidentState = "completed"
	// IncidentStateNotCompleted is a terminal state reserved for future use;
	// no transition currently produces it.
	IncidentStateNotCompleted IncidentState = "not_completed"
)

// Priority enumerates urgency for incidents and maintenance tickets.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Incident is an ad-hoc issue reported by housekeeping and dispatched to
// maintenance.
type Incident struct {
	ID           string
	Area         string
	Location     string
	IsRoom       bool
	RoomNumber   string
	Floor        string
	Description  string
	Priority     Priority
	State        IncidentState
	ReporterID   string
	ReporterName string
	// AssigneeID is empty while the incident is unclaimed. Absence and empty
	// string mean the same thing everywhere; eligibility predicates must not
	// distinguish them.
	AssigneeID    string
	AssigneeName  string
	ReportedAt    time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Observation   string
	WorkPerformed string
}

// Assigned reports whether a worker holds the incident.
func (i *Incident) Assigned() bool {
	return i.AssigneeID != ""
}

// Open reports whether the incident counts toward its assignee's load.
func (i *Incident) Open() bool {
	return i.State == IncidentStatePending || i.State == IncidentStateInProgress
}

// Claimable reports whether a maintenance worker may self-claim the incident.
func (i *Incident) Claimable() bool {
	return i.State == IncidentStatePending && !i.Assigned()
}
