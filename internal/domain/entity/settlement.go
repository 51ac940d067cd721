package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Settlement. Solo se persisten cargos exitosos; un rechazo de la
// pasarela no deja fila.
const (
	SettlementSucceeded = "succeeded"
)

// Settlement registra el resultado de un cargo exitoso: monto bruto, comisión de
// la plataforma y neto pagadero al proveedor. Inmutable después de creado.
type Settlement struct {
	ID            string
	OrderID       string
	SupplierID    string
	GrossAmount   decimal.Decimal
	FeeAmount     decimal.Decimal // gross * commission_rate / 100, redondeo half-up a la unidad menor
	NetAmount     decimal.Decimal // gross - fee
	Currency      string
	GatewayTxnID  string // id de transacción devuelto por Stripe
	Status        string
	CreatedAt     time.Time
}
