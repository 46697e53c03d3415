package dto

import (
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	AreaID       string          `json:"id_area"`
	TypeID       string          `json:"id_tipo"`
	EquipmentID  string          `json:"id_equipo"`
	Description  string          `json:"descripcion"`
	Priority     domain.Priority `json:"prioridad"`
	ScheduledFor *time.Time      `json:"fecha_programada"`
	AssigneeID   string          `json:"id_usuario_asignado"`
}

// FinishTicketRequest payload.
type FinishTicketRequest struct {
	WorkPerformed string `json:"trabajo_realizado"`
	Observation   string `json:"observaciones"`
}

// TicketResponse mirrors the stored maintenance ticket record.
type TicketResponse struct {
	ID                 string             `json:"id"`
	AreaID             string             `json:"id_area"`
	TypeID             string             `json:"id_tipo"`
	EquipmentID        string             `json:"id_equipo"`
	Description        string             `json:"descripcion"`
	Priority           domain.Priority    `json:"prioridad"`
	State              domain.TicketState `json:"estado"`
	RequestedAt        time.Time          `json:"fecha_solicitud"`
	ScheduledFor       *time.Time         `json:"fecha_programada,omitempty"`
	StartedAt          *time.Time         `json:"fecha_inicio,omitempty"`
	CompletedAt        *time.Time         `json:"fecha_completado,omitempty"`
	WorkPerformed      string             `json:"trabajo_realizado,omitempty"`
	Observation        string             `json:"observaciones,omitempty"`
	AssigneeID         string             `json:"id_usuario_asignado,omitempty"`
	RequesterID        string             `json:"id_usuario_solicitante"`
	WorkOrderGenerated bool               `json:"orden_trabajo_generada"`
}

// NewTicketResponse maps a domain ticket onto the wire shape.
func NewTicketResponse(ticket *domain.MaintenanceTicket) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		AreaID:             ticket.AreaID,
		TypeID:             ticket.TypeID,
		EquipmentID:        ticket.EquipmentID,
		Description:        ticket.Description,
		Priority:           ticket.Priority,
		State:              ticket.State,
		RequestedAt:        ticket.RequestedAt,
		ScheduledFor:       ticket.ScheduledFor,
		StartedAt:          ticket.StartedAt,
		CompletedAt:        ticket.CompletedAt,
		WorkPerformed:      ticket.WorkPerformed,
		Observation:        ticket.Observation,
		AssigneeID:         ticket.AssigneeID,
		RequesterID:        ticket.RequesterID,
		WorkOrderGenerated: ticket.WorkOrderGenerated,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.MaintenanceTicket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}

// AddPartRequest payload.
type AddPartRequest struct {
	Name      string  `json:"nombre"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio_unitario"`
	Supplier  string  `json:"proveedor"`
}

// PartResponse mirrors a stored part record.
type PartResponse struct {
	ID        string  `json:"id"`
	TicketID  string  `json:"id_mantenimiento"`
	Name      string  `json:"nombre"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio_unitario"`
	Supplier  string  `json:"proveedor,omitempty"`
	Cost      float64 `json:"costo"`
}

// PartsSummaryResponse lists parts with the running total.
type PartsSummaryResponse struct {
	Parts     []PartResponse `json:"refacciones"`
	TotalCost float64        `json:"costo_total"`
}

// NewPartResponse maps a domain part onto the wire shape.
func NewPartResponse(part *domain.Part) PartResponse {
	return PartResponse{
		ID:        part.ID,
		TicketID:  part.TicketID,
		Name:      part.Name,
		Quantity:  part.Quantity,
		UnitPrice: part.UnitPrice,
		Supplier:  part.Supplier,
		Cost:      part.Cost(),
	}
}
