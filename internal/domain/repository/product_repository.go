package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySupplierAndName(supplierID, name string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Product, error)
	// ListActive lista el catálogo público (solo activos); categoryID vacío = todas.
	ListActive(categoryID string, limit, offset int) ([]*entity.Product, error)
	// DecrementStock ejecuta el decremento condicional atómico
	// (stock = stock - qty WHERE stock >= qty). Devuelve false si no alcanzó.
	DecrementStock(productID string, qty int64) (bool, error)
	CountByCategory(categoryID string) (int, error)
	Delete(id string) error
}
