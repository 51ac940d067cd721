package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// SupplierManagerRepository define el puerto del registro de membresía:
// qué usuarios no-dueños pueden actuar en nombre de un proveedor.
type SupplierManagerRepository interface {
	Add(manager *entity.SupplierManager) error
	// Remove devuelve false si no existía la fila (el caller decide si es 404).
	Remove(supplierID, userID string) (bool, error)
	Exists(supplierID, userID string) (bool, error)
	// ListBySupplier devuelve el conjunto de managers; el orden no está garantizado.
	ListBySupplier(supplierID string) ([]*entity.SupplierManager, error)
}
