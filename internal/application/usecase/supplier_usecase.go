package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// nameFolder case folding Unicode para la unicidad case-insensitive del nombre
// de empresa ("Café SAS" y "CAFÉ sas" colisionan).
var nameFolder = cases.Fold()

// SupplierUseCase casos de uso de proveedores: registro, ciclo de vida por
// admin y registro de membresía (managers).
type SupplierUseCase struct {
	access       accessResolver
	supplierRepo repository.SupplierRepository
	managerRepo  repository.SupplierManagerRepository
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	supplierRepo repository.SupplierRepository,
	managerRepo repository.SupplierManagerRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
) *SupplierUseCase {
	return &SupplierUseCase{
		access:       accessResolver{supplierRepo: supplierRepo, managerRepo: managerRepo},
		supplierRepo: supplierRepo,
		managerRepo:  managerRepo,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
	}
}

// Register crea un proveedor en estado pending con el principal como owner y le
// agrega el rol supplier. Nombre de empresa único case-insensitive (ErrDuplicate).
func (uc *SupplierUseCase) Register(p authz.Principal, in dto.RegisterSupplierRequest) (*dto.SupplierResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CommissionRate.IsNegative() || in.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	folded := nameFolder.String(in.CompanyName)
	existing, err := uc.supplierRepo.GetByFoldedName(folded)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		CompanyName:    in.CompanyName,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		Address:        in.Address,
		Status:         entity.SupplierPending,
		OwnerUserID:    p.UserID,
		CommissionRate: in.CommissionRate,
		PayoutAccount:  in.PayoutAccount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.supplierRepo.Create(supplier, folded); err != nil {
		return nil, err
	}
	if err := uc.userRepo.AddRole(p.UserID, entity.RoleSupplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID devuelve un proveedor; requiere membresía (owner/manager) o admin.
func (uc *SupplierUseCase) GetByID(p authz.Principal, id string) (*dto.SupplierResponse, error) {
	supplier, res, err := uc.access.resolve(id, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionSupplierView, res); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista todos los proveedores (la ruta es solo admin).
func (uc *SupplierUseCase) List(limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los datos de contacto; requiere membresía. Un cambio de
// nombre revalida la unicidad case-insensitive.
func (uc *SupplierUseCase) Update(p authz.Principal, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, res, err := uc.access.resolve(id, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionSupplierUpdate, res); err != nil {
		return nil, err
	}
	if in.CompanyName != nil && *in.CompanyName != supplier.CompanyName {
		if *in.CompanyName == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.supplierRepo.GetByFoldedName(nameFolder.String(*in.CompanyName))
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != supplier.ID {
			return nil, domain.ErrDuplicate
		}
		supplier.CompanyName = *in.CompanyName
	}
	if in.ContactEmail != nil {
		supplier.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		supplier.ContactPhone = *in.ContactPhone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier, nameFolder.String(supplier.CompanyName)); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// statusActions mapea el estado destino a la acción del evaluador.
var statusActions = map[string]authz.Action{
	entity.SupplierVerified:  authz.ActionSupplierVerify,
	entity.SupplierSuspended: authz.ActionSupplierSuspend,
	entity.SupplierActive:    authz.ActionSupplierActivate,
}

// ChangeStatus transición explícita de estado (verify/suspend/activate).
// Solo admin: cualquier otro principal recibe Deny aunque sea el owner.
func (uc *SupplierUseCase) ChangeStatus(p authz.Principal, id, status string) (*dto.SupplierResponse, error) {
	action, ok := statusActions[status]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	supplier, res, err := uc.access.resolve(id, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, action, res); err != nil {
		return nil, err
	}
	if err := uc.supplierRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	supplier.Status = status
	supplier.UpdatedAt = time.Now()
	return toSupplierResponse(supplier), nil
}

// Delete borra el proveedor (solo admin). Productos y managers caen en cascada;
// se rechaza con ErrConflict si quedan órdenes pendientes sin liquidar.
func (uc *SupplierUseCase) Delete(p authz.Principal, id string) error {
	_, res, err := uc.access.resolve(id, p)
	if err != nil {
		return err
	}
	if err := authorize(p, authz.ActionSupplierDelete, res); err != nil {
		return err
	}
	pending, err := uc.orderRepo.CountPendingBySupplier(id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return domain.ErrConflict
	}
	return uc.supplierRepo.Delete(id)
}

// ── Registro de membresía ─────────────────────────────────────────────────────

// AddManager agrega un manager delegado. Solo owner o admin. Falla con
// ErrNotFound (proveedor o usuario inexistente) y ErrDuplicate (ya es owner o
// ya tiene fila de manager).
func (uc *SupplierUseCase) AddManager(p authz.Principal, supplierID string, in dto.AddManagerRequest) (*dto.ManagerResponse, error) {
	supplier, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionManagerMutate, res); err != nil {
		return nil, err
	}
	if in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.userRepo.Exists(in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	// El owner es manager implícito: nunca lleva fila.
	if in.UserID == supplier.OwnerUserID {
		return nil, domain.ErrDuplicate
	}
	already, err := uc.managerRepo.Exists(supplierID, in.UserID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, domain.ErrDuplicate
	}
	manager := &entity.SupplierManager{
		SupplierID: supplierID,
		UserID:     in.UserID,
		CreatedAt:  time.Now(),
	}
	if err := uc.managerRepo.Add(manager); err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

// RemoveManager elimina una fila de manager. Remover al owner es
// ErrInvalidOperation (no es una fila removible); fila inexistente es ErrNotFound.
func (uc *SupplierUseCase) RemoveManager(p authz.Principal, supplierID, userID string) error {
	supplier, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return err
	}
	if err := authorize(p, authz.ActionManagerMutate, res); err != nil {
		return err
	}
	if userID == supplier.OwnerUserID {
		return domain.ErrInvalidOperation
	}
	removed, err := uc.managerRepo.Remove(supplierID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// ListManagers devuelve el conjunto de managers (orden no garantizado).
// Visible para cualquier miembro del proveedor.
func (uc *SupplierUseCase) ListManagers(p authz.Principal, supplierID string) ([]dto.ManagerResponse, error) {
	_, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionSupplierView, res); err != nil {
		return nil, err
	}
	list, err := uc.managerRepo.ListBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManagerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManagerResponse(m))
	}
	return items, nil
}

// IsMember indica si el usuario es owner o manager del proveedor.
func (uc *SupplierUseCase) IsMember(supplierID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return false, err
	}
	if supplier == nil {
		return false, domain.ErrNotFound
	}
	if supplier.OwnerUserID == userID {
		return true, nil
	}
	return uc.managerRepo.Exists(supplierID, userID)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:             s.ID,
		CompanyName:    s.CompanyName,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		Address:        s.Address,
		Status:         s.Status,
		OwnerUserID:    s.OwnerUserID,
		CommissionRate: s.CommissionRate,
		PayoutAccount:  s.PayoutAccount,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toManagerResponse(m *entity.SupplierManager) *dto.ManagerResponse {
	if m == nil {
		return nil
	}
	return &dto.ManagerResponse{
		SupplierID: m.SupplierID,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
	}
}
