package payment

import (
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
)

// GenerateReceipt genera el comprobante PDF de un settlement. Mismas reglas de
// visibilidad que GetSettlement.
func (uc *UseCase) GenerateReceipt(p authz.Principal, settlementID string) ([]byte, error) {
	record, err := uc.settlementRepo.GetByID(settlementID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeView(p, record.SupplierID); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(record.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(record.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	pdf, err := uc.receipts.Generate(record, order, supplier)
	if err != nil {
		uc.log.Error().Err(err).Str("settlement_id", record.ID).Msg("generación de comprobante PDF falló")
		return nil, err
	}
	return pdf, nil
}
