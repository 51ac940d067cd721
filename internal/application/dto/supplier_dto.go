package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSupplierRequest alta de proveedor. El usuario autenticado queda como owner.
type RegisterSupplierRequest struct {
	CompanyName    string          `json:"company_name"`
	ContactEmail   string          `json:"contact_email"`
	ContactPhone   string          `json:"contact_phone"`
	Address        string          `json:"address"`
	CommissionRate decimal.Decimal `json:"commission_rate"` // 0–100
	PayoutAccount  string          `json:"payout_account"`
}

// UpdateSupplierRequest actualización parcial de datos de contacto.
// El estado y la comisión NO se tocan por aquí (rutas admin).
type UpdateSupplierRequest struct {
	CompanyName  *string `json:"company_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}

// SupplierResponse representación de un proveedor.
type SupplierResponse struct {
	ID             string          `json:"id"`
	CompanyName    string          `json:"company_name"`
	ContactEmail   string          `json:"contact_email"`
	ContactPhone   string          `json:"contact_phone"`
	Address        string          `json:"address"`
	Status         string          `json:"status"`
	OwnerUserID    string          `json:"owner_user_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	PayoutAccount  string          `json:"payout_account"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SupplierListResponse listado paginado.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AddManagerRequest alta de manager delegado.
type AddManagerRequest struct {
	UserID string `json:"user_id"`
}

// ManagerResponse fila de membresía.
type ManagerResponse struct {
	SupplierID string    `json:"supplier_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
