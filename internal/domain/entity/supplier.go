package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de Supplier. Nace en pending; verified/suspended/active
// solo por acción explícita de un admin.
const (
	SupplierPending   = "pending"
	SupplierVerified  = "verified"
	SupplierSuspended = "suspended"
	SupplierActive    = "active"
)

// Supplier representa un vendedor/tenant del marketplace. Es dueño exclusivo de
// sus productos y de sus filas de managers (cascade al borrarlo).
type Supplier struct {
	ID             string
	CompanyName    string // único entre proveedores, case-insensitive
	ContactEmail   string
	ContactPhone   string
	Address        string
	Status         string          // ver constantes Supplier*
	OwnerUserID    string          // el usuario que registró el proveedor
	CommissionRate decimal.Decimal // % de comisión de la plataforma, 0–100
	PayoutAccount  string          // referencia a la cuenta de pago del proveedor
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanPublish indica si el proveedor está habilitado para publicar productos
// y recibir pagos (solo verified o active).
func (s *Supplier) CanPublish() bool {
	return s.Status == SupplierVerified || s.Status == SupplierActive
}

// SupplierManager otorga a un usuario no-dueño derechos de gestión sobre un
// proveedor. El owner es manager implícito y nunca tiene fila.
type SupplierManager struct {
	SupplierID string
	UserID     string
	CreatedAt  time.Time
}
