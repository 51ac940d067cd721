package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeRequest solicitud de cobro de una orden. PaymentToken es el source
// token de la pasarela; IdempotencyToken lo genera el cliente por intento
// (el motor no deduplica del lado servidor, solo lo reenvía al gateway).
type ChargeRequest struct {
	OrderID          string          `json:"order_id"`
	SupplierID       string          `json:"supplier_id"`
	PaymentToken     string          `json:"payment_token"`
	IdempotencyToken string          `json:"idempotency_token"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description"`
}

// SettlementResponse registro del reparto de un cargo exitoso.
type SettlementResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	SupplierID   string          `json:"supplier_id"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	FeeAmount    decimal.Decimal `json:"fee_amount"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Currency     string          `json:"currency"`
	GatewayTxnID string          `json:"gateway_txn_id"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}
