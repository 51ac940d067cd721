package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	UpdateStatus(id, status string) error
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Order, error)
	ListByBuyer(buyerUserID string, limit, offset int) ([]*entity.Order, error)
	// CountPendingBySupplier se usa para bloquear el borrado de un proveedor
	// con órdenes sin liquidar.
	CountPendingBySupplier(supplierID string) (int, error)
}
