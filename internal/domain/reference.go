package domain

// Area is a hotel area or zone (lobby, kitchen, floor wing).
type Area struct {
	ID          string
	Name        string
	Description string
}

// EquipmentType classifies equipment (HVAC, electrical, plumbing).
type EquipmentType struct {
	ID          string
	Name        string
	Description string
}

// Equipment is a catalog entry tied to an area and a type.
type Equipment struct {
	ID           string
	Name         string
	Brand        string
	Model        string
	SerialNumber string
	AreaID       string
	TypeID       string
}
