package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// La unicidad case-insensitive del nombre se materializa en la columna
// company_name_folded (case folding Unicode calculado en el caso de uso).
type SupplierRepository interface {
	Create(supplier *entity.Supplier, nameFolded string) error
	GetByID(id string) (*entity.Supplier, error)
	GetByFoldedName(nameFolded string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier, nameFolded string) error
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Supplier, error)
	// Delete borra el proveedor; productos y managers caen por cascade de FK.
	Delete(id string) error
}
