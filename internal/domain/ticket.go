package domain

import "time"

// TicketState enumerates lifecycle states for maintenance tickets.
type TicketState string

const (
	TicketStateScheduled      TicketState = "scheduled"
	TicketStateOrderGenerated TicketState = "order_generated"
	TicketStateActive         TicketState = "active"
	TicketStateCompleted      TicketState = "completed"
)

// ticketTransitions lists the legal forward edges. Unlike incidents, tickets
// have no reopen path.
var ticketTransitions = map[TicketState][]TicketState{
	TicketStateScheduled:      {TicketStateOrderGenerated, TicketStateActive},
	TicketStateOrderGenerated: {TicketStateActive},
	TicketStateActive:         {TicketStateCompleted},
	TicketStateCompleted:      {},
}

// CanTransition reports whether a ticket may move from current to next.
func CanTransition(current, next TicketState) bool {
	for _, candidate := range ticketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// MaintenanceTicket is a planned/scheduled maintenance work item.
type MaintenanceTicket struct {
	ID                 string
	AreaID             string
	TypeID             string
	EquipmentID        string
	Description        string
	Priority           Priority
	State              TicketState
	RequestedAt        time.Time
	ScheduledFor       *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	WorkPerformed      string
	Observation        string
	AssigneeID         string
	RequesterID        string
	WorkOrderGenerated bool
}

// GoverningDate returns the timestamp used by the historical query:
// completion when present, then start. The boolean is false when neither is
// set, which excludes the ticket from any day filter.
func (t *MaintenanceTicket) GoverningDate() (time.Time, bool) {
	if t.CompletedAt != nil {
		return *t.CompletedAt, true
	}
	if t.StartedAt != nil {
		return *t.StartedAt, true
	}
	return time.Time{}, false
}

// Part is a spare part consumed by a maintenance ticket.
type Part struct {
	ID        string
	TicketID  string
	Name      string
	Quantity  int
	UnitPrice float64
	Supplier  string
}

// Cost returns the line total for the part.
func (p *Part) Cost() float64 {
	return float64(p.Quantity) * p.UnitPrice
}
