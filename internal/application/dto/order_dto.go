package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest colocación de una orden por un comprador autenticado.
type PlaceOrderRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Currency  string `json:"currency"` // código ISO de 3 letras
}

// OrderResponse representación de una orden.
type OrderResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	BuyerUserID string          `json:"buyer_user_id"`
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
