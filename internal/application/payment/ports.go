package payment

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// GatewayCharge solicitud de cobro hacia la pasarela, ya en unidades menores.
type GatewayCharge struct {
	AmountMinor    int64
	Currency       string
	SourceToken    string
	Description    string
	IdempotencyKey string
	ReceiptEmail   string
	Metadata       map[string]string
}

// ChargeResult resultado de un cargo aceptado por la pasarela.
type ChargeResult struct {
	TransactionID string
	Status        string
}

// Gateway puerto de la pasarela de pagos. Un rechazo se reporta como
// *domain.PaymentError (envuelve ErrPaymentFailed) con el código de la pasarela.
type Gateway interface {
	Charge(ctx context.Context, in GatewayCharge) (*ChargeResult, error)
}

// PaymentTxRunner ejecuta fn dentro de una transacción de DB para que el
// settlement y la marca paid de la orden se persistan juntos o ninguno.
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(orderRepo repository.OrderRepository, settlementRepo repository.SettlementRepository) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de un settlement.
type ReceiptPDFGenerator interface {
	Generate(settlement *entity.Settlement, order *entity.Order, supplier *entity.Supplier) ([]byte, error)
}
