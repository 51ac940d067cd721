package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

// Order representa una orden de compra contra un proveedor. Para este núcleo la
// orden referencia un producto con cantidad; el total ya viene calculado al
// momento de colocarla y es lo que se cobra en el settlement.
type Order struct {
	ID          string
	SupplierID  string
	BuyerUserID string
	ProductID   string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string // código ISO de 3 letras, minúsculas
	Status      string // ver constantes Order*
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
