package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

type fakeSupplierRepo struct {
	byID          map[string]*entity.Supplier
	byFolded      map[string]*entity.Supplier
	updatedStatus string
	deleted       string
}

func newFakeSupplierRepo(suppliers ...*entity.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{byID: map[string]*entity.Supplier{}, byFolded: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier, folded string) error {
	r.byID[s.ID] = s
	r.byFolded[folded] = s
	return nil
}
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) { return r.byID[id], nil }
func (r *fakeSupplierRepo) GetByFoldedName(folded string) (*entity.Supplier, error) {
	return r.byFolded[folded], nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier, folded string) error {
	r.byID[s.ID] = s
	r.byFolded[folded] = s
	return nil
}
func (r *fakeSupplierRepo) UpdateStatus(id, status string) error {
	r.updatedStatus = status
	if s := r.byID[id]; s != nil {
		s.Status = status
	}
	return nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Delete(id string) error {
	r.deleted = id
	delete(r.byID, id)
	return nil
}

type fakeManagerRepo struct {
	rows map[string]bool // "supplierID/userID"
}

func newFakeManagerRepo() *fakeManagerRepo { return &fakeManagerRepo{rows: map[string]bool{}} }

func (r *fakeManagerRepo) key(supplierID, userID string) string { return supplierID + "/" + userID }
func (r *fakeManagerRepo) Add(m *entity.SupplierManager) error {
	r.rows[r.key(m.SupplierID, m.UserID)] = true
	return nil
}
func (r *fakeManagerRepo) Remove(supplierID, userID string) (bool, error) {
	k := r.key(supplierID, userID)
	if !r.rows[k] {
		return false, nil
	}
	delete(r.rows, k)
	return true, nil
}
func (r *fakeManagerRepo) Exists(supplierID, userID string) (bool, error) {
	return r.rows[r.key(supplierID, userID)], nil
}
func (r *fakeManagerRepo) ListBySupplier(supplierID string) ([]*entity.SupplierManager, error) {
	var out []*entity.SupplierManager
	for k := range r.rows {
		out = append(out, &entity.SupplierManager{SupplierID: supplierID, UserID: k[len(supplierID)+1:]})
	}
	return out, nil
}

type fakeUserRepo struct {
	existing   map[string]bool
	addedRoles []string
}

func (r *fakeUserRepo) Create(*entity.User) error                  { return nil }
func (r *fakeUserRepo) GetByID(string) (*entity.User, error)       { return nil, nil }
func (r *fakeUserRepo) FindByEmail(string) (*entity.User, error)   { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (r *fakeUserRepo) AddRole(userID, role string) error {
	r.addedRoles = append(r.addedRoles, role)
	return nil
}
func (r *fakeUserRepo) Exists(id string) (bool, error) { return r.existing[id], nil }

type fakeOrderCounter struct {
	pending int
}

func (r *fakeOrderCounter) Create(*entity.Order) error            { return nil }
func (r *fakeOrderCounter) GetByID(string) (*entity.Order, error) { return nil, nil }
func (r *fakeOrderCounter) UpdateStatus(string, string) error     { return nil }
func (r *fakeOrderCounter) ListBySupplier(string, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderCounter) ListByBuyer(string, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderCounter) CountPendingBySupplier(string) (int, error) { return r.pending, nil }

func supplierFixture() (*SupplierUseCase, *fakeSupplierRepo, *fakeManagerRepo, *fakeUserRepo, *fakeOrderCounter) {
	suppliers := newFakeSupplierRepo(&entity.Supplier{
		ID:             "sup-1",
		CompanyName:    "Café Andino SAS",
		Status:         entity.SupplierActive,
		OwnerUserID:    "owner-1",
		CommissionRate: decimal.NewFromInt(10),
	})
	managers := newFakeManagerRepo()
	users := &fakeUserRepo{existing: map[string]bool{"owner-1": true, "mgr-1": true, "user-2": true}}
	orders := &fakeOrderCounter{}
	uc := NewSupplierUseCase(suppliers, managers, users, orders)
	return uc, suppliers, managers, users, orders
}

var (
	owner = authz.Principal{UserID: "owner-1", Active: true}
	admin = authz.Principal{UserID: "admin-1", Active: true, Roles: []string{entity.RoleAdmin}}
)

func TestSupplierRegister_AsignaRolYEstadoPending(t *testing.T) {
	uc, _, _, users, _ := supplierFixture()

	out, err := uc.Register(authz.Principal{UserID: "user-2", Active: true}, dto.RegisterSupplierRequest{
		CompanyName:    "Tienda Nueva",
		CommissionRate: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierPending, out.Status)
	assert.Equal(t, "user-2", out.OwnerUserID)
	assert.Contains(t, users.addedRoles, entity.RoleSupplier)
}

func TestSupplierRegister_NombreColisionaCaseInsensitive(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.Register(owner, dto.RegisterSupplierRequest{
		CompanyName:    "Tienda Única",
		CommissionRate: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = uc.Register(owner, dto.RegisterSupplierRequest{
		CompanyName:    "TIENDA ÚNICA",
		CommissionRate: decimal.NewFromInt(5),
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestSupplierRegister_ComisionFueraDeRango(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.Register(owner, dto.RegisterSupplierRequest{
		CompanyName:    "Otra",
		CommissionRate: decimal.NewFromInt(101),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Register(owner, dto.RegisterSupplierRequest{
		CompanyName:    "Otra",
		CommissionRate: decimal.NewFromInt(-1),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAddManager_OwnerAgregaManager(t *testing.T) {
	uc, _, managers, _, _ := supplierFixture()

	out, err := uc.AddManager(owner, "sup-1", dto.AddManagerRequest{UserID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", out.UserID)

	ok, _ := managers.Exists("sup-1", "mgr-1")
	assert.True(t, ok)
}

func TestAddManager_AgregarAlOwnerEsDuplicado(t *testing.T) {
	// El owner es manager implícito: nunca lleva fila.
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.AddManager(owner, "sup-1", dto.AddManagerRequest{UserID: "owner-1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestAddManager_FilaExistenteEsDuplicado(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.AddManager(owner, "sup-1", dto.AddManagerRequest{UserID: "mgr-1"})
	require.NoError(t, err)
	_, err = uc.AddManager(owner, "sup-1", dto.AddManagerRequest{UserID: "mgr-1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestAddManager_UsuarioInexistente(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.AddManager(owner, "sup-1", dto.AddManagerRequest{UserID: "fantasma"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestAddManager_UnManagerNoPuedeMutarManagers(t *testing.T) {
	uc, _, managers, _, _ := supplierFixture()
	require.NoError(t, managers.Add(&entity.SupplierManager{SupplierID: "sup-1", UserID: "mgr-1"}))

	_, err := uc.AddManager(authz.Principal{UserID: "mgr-1", Active: true}, "sup-1", dto.AddManagerRequest{UserID: "user-2"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAddManager_AdminPuedeMutarManagers(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.AddManager(admin, "sup-1", dto.AddManagerRequest{UserID: "user-2"})
	assert.NoError(t, err)
}

func TestRemoveManager_RemoverAlOwnerEsInvalido(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	err := uc.RemoveManager(owner, "sup-1", "owner-1")
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
}

func TestRemoveManager_FilaInexistenteEs404(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	err := uc.RemoveManager(owner, "sup-1", "mgr-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemoveManager_OwnerRemueveFila(t *testing.T) {
	uc, _, managers, _, _ := supplierFixture()
	require.NoError(t, managers.Add(&entity.SupplierManager{SupplierID: "sup-1", UserID: "mgr-1"}))

	err := uc.RemoveManager(owner, "sup-1", "mgr-1")
	require.NoError(t, err)
	ok, _ := managers.Exists("sup-1", "mgr-1")
	assert.False(t, ok)
}

func TestChangeStatus_SoloAdmin(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.ChangeStatus(owner, "sup-1", entity.SupplierVerified)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	out, err := uc.ChangeStatus(admin, "sup-1", entity.SupplierVerified)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierVerified, out.Status)
}

func TestChangeStatus_EstadoDesconocido(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.ChangeStatus(admin, "sup-1", "archivado")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSupplierDelete_ConOrdenesPendientesFalla(t *testing.T) {
	uc, suppliers, _, _, orders := supplierFixture()
	orders.pending = 2

	err := uc.Delete(admin, "sup-1")
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Empty(t, suppliers.deleted)
}

func TestSupplierDelete_AdminBorraSinPendientes(t *testing.T) {
	uc, suppliers, _, _, _ := supplierFixture()

	err := uc.Delete(admin, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, "sup-1", suppliers.deleted)
}

func TestSupplierGetByID_NoMiembroEsForbidden(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.GetByID(authz.Principal{UserID: "user-2", Active: true}, "sup-1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestSupplierGetByID_ManagerVeElProveedor(t *testing.T) {
	uc, _, managers, _, _ := supplierFixture()
	require.NoError(t, managers.Add(&entity.SupplierManager{SupplierID: "sup-1", UserID: "mgr-1"}))

	out, err := uc.GetByID(authz.Principal{UserID: "mgr-1", Active: true}, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, "sup-1", out.ID)
}

func TestSupplierGetByID_Inexistente(t *testing.T) {
	uc, _, _, _, _ := supplierFixture()

	_, err := uc.GetByID(admin, "fantasma")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
