package usecase

import (
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// accessResolver carga el proveedor y resuelve la membresía del principal para
// alimentar al evaluador de autorización. La membresía se resuelve una vez por
// request; el evaluador es puro y no toca la DB.
type accessResolver struct {
	supplierRepo repository.SupplierRepository
	managerRepo  repository.SupplierManagerRepository
}

// resolve devuelve el proveedor y el Resource con la membresía resuelta.
// Retorna domain.ErrNotFound si el proveedor no existe.
func (a accessResolver) resolve(supplierID string, p authz.Principal) (*entity.Supplier, authz.Resource, error) {
	supplier, err := a.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, authz.Resource{}, fmt.Errorf("cargar proveedor: %w", err)
	}
	if supplier == nil {
		return nil, authz.Resource{}, domain.ErrNotFound
	}
	member := false
	if p.UserID != "" && p.UserID != supplier.OwnerUserID {
		member, err = a.managerRepo.Exists(supplierID, p.UserID)
		if err != nil {
			return nil, authz.Resource{}, fmt.Errorf("resolver membresía: %w", err)
		}
	}
	return supplier, authz.Resource{
		SupplierID:     supplier.ID,
		OwnerUserID:    supplier.OwnerUserID,
		SupplierStatus: supplier.Status,
		Member:         member,
	}, nil
}

// denyError convierte una decisión Deny en un error de dominio que el
// transporte mapea a 403 conservando la razón.
func denyError(d authz.Decision) error {
	return fmt.Errorf("%s: %w", d.Reason, domain.ErrForbidden)
}

// authorize helper: evalúa y devuelve error solo en Deny.
func authorize(p authz.Principal, action authz.Action, res authz.Resource) error {
	if d := authz.Authorize(p, action, res); !d.Allowed {
		return denyError(d)
	}
	return nil
}
