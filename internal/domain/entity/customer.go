package entity

// MeasurementProfile es un juego de medidas con nombre dentro de un cliente.
// Un cliente puede tener varios (ej. padre e hijos bajo el mismo registro).
type MeasurementProfile struct {
	Name        string            `json:"name"`
	Measurement map[string]string `json:"measurementData"`
	StylingNote string            `json:"stylingNote"`
}

// Customer representa un cliente de la sastrería.
type Customer struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Phone     string               `json:"phone"`
	DateAdded string               `json:"dateAdded"` // YYYY-MM-DD
	Profiles  []MeasurementProfile `json:"profiles"`
}

// defaultDateAdded se asigna a clientes antiguos que no traen fecha de alta.
const defaultDateAdded = "2025-01-01"

// Normalize aplica defaults defensivos a un registro cargado del store.
func (c *Customer) Normalize() {
	if c.Profiles == nil {
		c.Profiles = []MeasurementProfile{}
	}
	if c.DateAdded == "" {
		c.DateAdded = defaultDateAdded
	}
}
