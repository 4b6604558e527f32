package model

// Field status values stored in Canchas.estado.
const (
	FieldAvailable   = "disponible"
	FieldMaintenance = "mantenimiento"
	FieldOccupied    = "ocupada"
	FieldUnavailable = "no_disponible"
)

// Field represents a soccer pitch (cancha).  OpenTime and CloseTime bound
// the hours a field can be booked and feed the occupancy denominator on the
// dashboard.  A field owns zero or more reservations and rates.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the pitch.
//  Status    – one of the Field* constants above.
//  TypeID    – foreign key into TipoCanchas; drives pricing and equipment.
//  Location  – where the pitch sits inside the facility.
//  Capacity  – maximum number of players.
//  OpenTime  – daily opening hour ("HH:MM").
//  CloseTime – daily closing hour ("HH:MM").
type Field struct {
	ID        uint64 `json:"id"`              // Canchas.id
	Name      string `json:"nombre_cancha"`   // Canchas.nombre_cancha
	Status    string `json:"estado"`          // Canchas.estado
	TypeID    uint64 `json:"id_tipo"`         // Canchas.id_tipo
	Location  string `json:"ubicacion"`       // Canchas.ubicacion
	Capacity  int    `json:"capacidad"`       // Canchas.capacidad
	OpenTime  string `json:"horario_inicio"`  // Canchas.horario_inicio
	CloseTime string `json:"horario_fin"`     // Canchas.horario_fin
}

// FieldType classifies pitches ("Fútbol 11", "Fútbol 7", "Fútbol 5") and
// carries the hourly price.  The label also selects the automatic equipment
// quantities loaned out when a reservation is confirmed.
type FieldType struct {
	ID           uint64  `json:"id"`     // TipoCanchas.id
	Label        string  `json:"tipo"`   // TipoCanchas.tipo
	PricePerHour float64 `json:"precio"` // TipoCanchas.precio
}

// Rate is the historical per-field pricing table.  Pricing now comes from
// FieldType.PricePerHour; the table is kept for compatibility with old data.
type Rate struct {
	ID        uint64  `json:"id"`          // Tarifas.id
	FieldID   uint64  `json:"id_cancha"`   // Tarifas.id_cancha
	Price     float64 `json:"precio"`      // Tarifas.precio
	StartTime string  `json:"hora_inicio"` // Tarifas.hora_inicio
	EndTime   string  `json:"hora_fin"`    // Tarifas.hora_fin
}
