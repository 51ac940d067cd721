package entity

import "time"

// Estados de una categoría.
const (
	CategoryActive   = "active"
	CategoryInactive = "inactive"
)

// Category representa una categoría de productos (jerárquica opcional).
// Invariante: la cadena de padres nunca forma ciclos.
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string // único global
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
