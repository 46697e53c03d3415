package dto

import (
	"github.com/hbhotel/facilities-service/internal/domain"
)

// AreaRequest payload for create and update.
type AreaRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// AreaResponse mirrors a stored area.
type AreaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// TypeRequest payload for create and update.
type TypeRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// TypeResponse mirrors a stored equipment type.
type TypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// EquipmentRequest payload for create and update.
type EquipmentRequest struct {
	Name         string `json:"nombre"`
	Brand        string `json:"marca"`
	Model        string `json:"modelo"`
	SerialNumber string `json:"numero_serie"`
	AreaID       string `json:"id_area"`
	TypeID       string `json:"id_tipo"`
}

// EquipmentResponse mirrors a stored equipment record.
type EquipmentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"nombre"`
	Brand        string `json:"marca,omitempty"`
	Model        string `json:"modelo,omitempty"`
	SerialNumber string `json:"numero_serie,omitempty"`
	AreaID       string `json:"id_area,omitempty"`
	TypeID       string `json:"id_tipo,omitempty"`
}

// NewAreaResponse maps a domain area.
func NewAreaResponse(area *domain.Area) AreaResponse {
	return AreaResponse{ID: area.ID, Name: area.Name, Description: area.Description}
}

// NewAreaResponses maps a slice of areas.
func NewAreaResponses(areas []domain.Area) []AreaResponse {
	items := make([]AreaResponse, 0, len(areas))
	for i := range areas {
		items = append(items, NewAreaResponse(&areas[i]))
	}
	return items
}

// NewTypeResponse maps a domain equipment type.
func NewTypeResponse(t *domain.EquipmentType) TypeResponse {
	return TypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

// NewTypeResponses maps a slice of types.
func NewTypeResponses(types []domain.EquipmentType) []TypeResponse {
	items := make([]TypeResponse, 0, len(types))
	for i := range types {
		items = append(items, NewTypeResponse(&types[i]))
	}
	return items
}

// NewEquipmentResponse maps a domain equipment record.
func NewEquipmentResponse(eq *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:           eq.ID,
		Name:         eq.Name,
		Brand:        eq.Brand,
		Model:        eq.Model,
		SerialNumber: eq.SerialNumber,
		AreaID:       eq.AreaID,
		TypeID:       eq.TypeID,
	}
}

// NewEquipmentResponses maps a slice of equipment records.
func NewEquipmentResponses(equipment []domain.Equipment) []EquipmentResponse {
	items := make([]EquipmentResponse, 0, len(equipment))
	for i := range equipment {
		items = append(items, NewEquipmentResponse(&equipment[i]))
	}
	return items
}
