package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// SettlementRepository define el puerto de persistencia para Settlement (DIP).
// Los settlements son inmutables: no hay Update.
type SettlementRepository interface {
	Create(settlement *entity.Settlement) error
	GetByID(id string) (*entity.Settlement, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Settlement, error)
}
