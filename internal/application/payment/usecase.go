// Package payment orquesta el motor de liquidación: validación de la orden,
// cargo en la pasarela y persistencia atómica del settlement + orden paid.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"github.com/jhoicas/marketplace-api/internal/domain/settlement"
)

// UseCase motor de liquidación de pagos.
type UseCase struct {
	supplierRepo   repository.SupplierRepository
	managerRepo    repository.SupplierManagerRepository
	orderRepo      repository.OrderRepository
	settlementRepo repository.SettlementRepository
	gateway        Gateway
	txRunner       PaymentTxRunner
	receipts       ReceiptPDFGenerator
	log            zerolog.Logger
}

// NewUseCase construye el motor de pagos.
func NewUseCase(
	supplierRepo repository.SupplierRepository,
	managerRepo repository.SupplierManagerRepository,
	orderRepo repository.OrderRepository,
	settlementRepo repository.SettlementRepository,
	gateway Gateway,
	txRunner PaymentTxRunner,
	receipts ReceiptPDFGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		supplierRepo:   supplierRepo,
		managerRepo:    managerRepo,
		orderRepo:      orderRepo,
		settlementRepo: settlementRepo,
		gateway:        gateway,
		txRunner:       txRunner,
		receipts:       receipts,
		log:            log,
	}
}

// ProcessPayment cobra una orden pending y registra el settlement.
//
// Secuencia: validar entrada y estado → cargar en la pasarela → persistir
// settlement + orden paid en una transacción. Si la pasarela rechaza, no se
// escribe nada; si el cargo pasó pero la DB falla, el error queda logueado con
// el txn id de la pasarela para conciliación manual.
func (uc *UseCase) ProcessPayment(ctx context.Context, p authz.Principal, in dto.ChargeRequest) (*dto.SettlementResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.OrderID == "" || in.SupplierID == "" || in.PaymentToken == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	currency := settlement.Normalize(in.Currency)
	if !settlement.Supported(currency) {
		return nil, domain.ErrInvalidInput
	}
	amountMinor, err := settlement.ToMinorUnits(in.Amount, currency)
	if err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if !supplier.CanPublish() {
		return nil, domain.ErrConflict
	}

	order, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.SupplierID != in.SupplierID {
		return nil, domain.ErrInvalidInput
	}
	if !order.TotalAmount.Equal(in.Amount) || order.Currency != currency {
		return nil, domain.ErrInvalidInput
	}
	if order.Status != entity.OrderPending {
		return nil, domain.ErrConflict
	}
	// Solo el comprador (o un admin) puede pagar su orden.
	if order.BuyerUserID != p.UserID && !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	idempotencyKey := in.IdempotencyToken
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}
	description := in.Description
	if description == "" {
		description = fmt.Sprintf("Orden %s - %s", order.ID, supplier.CompanyName)
	}

	result, err := uc.gateway.Charge(ctx, GatewayCharge{
		AmountMinor:    amountMinor,
		Currency:       currency,
		SourceToken:    in.PaymentToken,
		Description:    description,
		IdempotencyKey: idempotencyKey,
		ReceiptEmail:   p.Email,
		Metadata: map[string]string{
			"order_id":    order.ID,
			"supplier_id": supplier.ID,
		},
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("order_id", order.ID).
			Str("supplier_id", supplier.ID).
			Msg("cargo rechazado por la pasarela")
		return nil, err
	}

	fee, net, err := settlement.Split(in.Amount, supplier.CommissionRate, currency)
	if err != nil {
		return nil, err
	}
	record := &entity.Settlement{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		SupplierID:   supplier.ID,
		GrossAmount:  in.Amount,
		FeeAmount:    fee,
		NetAmount:    net,
		Currency:     currency,
		GatewayTxnID: result.TransactionID,
		Status:       entity.SettlementSucceeded,
		CreatedAt:    time.Now(),
	}
	err = uc.txRunner.RunPayment(ctx, func(orderRepo repository.OrderRepository, settlementRepo repository.SettlementRepository) error {
		if err := settlementRepo.Create(record); err != nil {
			return err
		}
		return orderRepo.UpdateStatus(order.ID, entity.OrderPaid)
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("order_id", order.ID).
			Str("gateway_txn_id", result.TransactionID).
			Msg("cargo exitoso pero la persistencia del settlement falló; requiere conciliación")
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("settlement_id", record.ID).
		Str("gateway_txn_id", result.TransactionID).
		Str("gross", record.GrossAmount.String()).
		Str("fee", record.FeeAmount.String()).
		Str("net", record.NetAmount.String()).
		Msg("settlement registrado")
	return toSettlementResponse(record), nil
}

// GetSettlement devuelve un settlement visible para miembros del proveedor o admin.
func (uc *UseCase) GetSettlement(p authz.Principal, id string) (*dto.SettlementResponse, error) {
	record, err := uc.settlementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeView(p, record.SupplierID); err != nil {
		return nil, err
	}
	return toSettlementResponse(record), nil
}

// ListSettlements lista los settlements del proveedor; requiere membresía o admin.
func (uc *UseCase) ListSettlements(p authz.Principal, supplierID string, limit, offset int) ([]dto.SettlementResponse, error) {
	if err := uc.authorizeView(p, supplierID); err != nil {
		return nil, err
	}
	list, err := uc.settlementRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SettlementResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSettlementResponse(s))
	}
	return items, nil
}

// authorizeView resuelve membresía y evalúa settlement.view.
func (uc *UseCase) authorizeView(p authz.Principal, supplierID string) error {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	member := false
	if p.UserID != "" && p.UserID != supplier.OwnerUserID {
		member, err = uc.managerRepo.Exists(supplierID, p.UserID)
		if err != nil {
			return err
		}
	}
	d := authz.Authorize(p, authz.ActionSettlementView, authz.Resource{
		SupplierID:     supplier.ID,
		OwnerUserID:    supplier.OwnerUserID,
		SupplierStatus: supplier.Status,
		Member:         member,
	})
	if !d.Allowed {
		return fmt.Errorf("%s: %w", d.Reason, domain.ErrForbidden)
	}
	return nil
}

func toSettlementResponse(s *entity.Settlement) *dto.SettlementResponse {
	if s == nil {
		return nil
	}
	return &dto.SettlementResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		SupplierID:   s.SupplierID,
		GrossAmount:  s.GrossAmount,
		FeeAmount:    s.FeeAmount,
		NetAmount:    s.NetAmount,
		Currency:     s.Currency,
		GatewayTxnID: s.GatewayTxnID,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}
}
