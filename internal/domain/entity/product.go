package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado por un proveedor.
// Name es único por proveedor; el stock se decrementa de forma condicional
// al colocar órdenes (nunca con read-modify-write).
type Product struct {
	ID          string
	SupplierID  string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int64
	Active      bool // visible en el catálogo público
	Featured    bool
	Rating      decimal.Decimal // promedio derivado de reseñas, denormalizado
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
