package dto

import (
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// CreateIncidentRequest payload.
type CreateIncidentRequest struct {
	Area        string          `json:"area"`
	Location    string          `json:"ubicacion"`
	IsRoom      bool            `json:"es_habitacion"`
	RoomNumber  string          `json:"numero_habitacion"`
	Floor       string          `json:"piso"`
	Description string          `json:"descripcion"`
	Priority    domain.Priority `json:"prioridad"`
}

// UpdateIncidentRequest payload; nil fields are left unchanged.
type UpdateIncidentRequest struct {
	Area        *string          `json:"area"`
	Location    *string          `json:"ubicacion"`
	RoomNumber  *string          `json:"numero_habitacion"`
	Floor       *string          `json:"piso"`
	Description *string          `json:"descripcion"`
	Priority    *domain.Priority `json:"prioridad"`
}

// CompleteIncidentRequest payload.
type CompleteIncidentRequest struct {
	WorkPerformed string `json:"trabajo_realizado"`
}

// ObservationRequest payload.
type ObservationRequest struct {
	Observation string `json:"observaciones_ama"`
}

// AssignIncidentRequest payload.
type AssignIncidentRequest struct {
	WorkerID string `json:"id_usuario"`
}

// IncidentResponse mirrors the stored incident record.
type IncidentResponse struct {
	ID            string               `json:"id"`
	Area          string               `json:"area"`
	Location      string               `json:"ubicacion"`
	IsRoom        bool                 `json:"es_habitacion"`
	RoomNumber    string               `json:"numero_habitacion"`
	Floor         string               `json:"piso"`
	Description   string               `json:"descripcion"`
	Priority      domain.Priority      `json:"prioridad"`
	State         domain.IncidentState `json:"estado"`
	ReporterID    string               `json:"id_ama_llaves"`
	ReporterName  string               `json:"nombre_ama_llaves"`
	AssigneeID    string               `json:"id_mantenimiento_asignado,omitempty"`
	AssigneeName  string               `json:"nombre_mantenimiento_asignado,omitempty"`
	ReportedAt    time.Time            `json:"fecha_reporte"`
	StartedAt     *time.Time           `json:"fecha_inicio,omitempty"`
	CompletedAt   *time.Time           `json:"fecha_completado,omitempty"`
	Observation   string               `json:"observaciones_ama,omitempty"`
	WorkPerformed string               `json:"trabajo_realizado,omitempty"`
}

// NewIncidentResponse maps a domain incident onto the wire shape.
func NewIncidentResponse(incident *domain.Incident) IncidentResponse {
	return IncidentResponse{
		ID:            incident.ID,
		Area:          incident.Area,
		Location:      incident.Location,
		IsRoom:        incident.IsRoom,
		RoomNumber:    incident.RoomNumber,
		Floor:         incident.Floor,
		Description:   incident.Description,
		Priority:      incident.Priority,
		State:         incident.State,
		ReporterID:    incident.ReporterID,
		ReporterName:  incident.ReporterName,
		AssigneeID:    incident.AssigneeID,
		AssigneeName:  incident.AssigneeName,
		ReportedAt:    incident.ReportedAt,
		StartedAt:     incident.StartedAt,
		CompletedAt:   incident.CompletedAt,
		Observation:   incident.Observation,
		WorkPerformed: incident.WorkPerformed,
	}
}

// NewIncidentResponses maps a slice of incidents.
func NewIncidentResponses(incidents []domain.Incident) []IncidentResponse {
	items := make([]IncidentResponse, 0, len(incidents))
	for i := range incidents {
		items = append(items, NewIncidentResponse(&incidents[i]))
	}
	return items
}
