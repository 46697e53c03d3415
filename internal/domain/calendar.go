package domain

import "time"

// CalendarEvent is a derived calendar entry mirroring a scheduled maintenance
// ticket. Events carry denormalized reference ids so the calendar renders
// without joins.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	EquipmentID string
	AreaID      string
	TypeID      string
	// TicketID links the event back to the maintenance ticket that produced
	// it. Empty on legacy events created before linkage existed; such events
	// are orphans and reclaimable by cleanup.
	TicketID  string
	Date      time.Time
	Time      string
	State     TicketState
	Priority  Priority
	Recurring bool
}

// Orphaned reports whether the event lacks a linked ticket among known ids.
func (e *CalendarEvent) Orphaned(ticketIDs map[string]struct{}) bool {
	if e.TicketID == "" {
		return true
	}
	_, ok := ticketIDs[e.TicketID]
	return !ok
}
