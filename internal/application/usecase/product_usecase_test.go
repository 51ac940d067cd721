package usecase

import (
	"context"
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

// fakeProductRepo repositorio en memoria con unicidad por (supplier, nombre).
type fakeProductRepo struct {
	fakeProductCounter
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.byID[id], nil }

func (r *fakeProductRepo) GetBySupplierAndName(supplierID, name string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SupplierID == supplierID && p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) ListActive(categoryID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.Active && (categoryID == "" || p.CategoryID == categoryID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func productFixture(supplierStatus string) (*ProductUseCase, *fakeProductRepo) {
	products := newFakeProductRepo()
	suppliers := newFakeSupplierRepo(&entity.Supplier{
		ID:          "sup-1",
		CompanyName: "Café Andino SAS",
		Status:      supplierStatus,
		OwnerUserID: "owner-1",
	})
	categories := newFakeCategoryRepo(cat("cat-1", "", "Audio"))
	uc := NewProductUseCase(products, suppliers, newFakeManagerRepo(), categories, nil)
	return uc, products
}

func TestProductCreate_BorradorConProveedorPending(t *testing.T) {
	// Crear sin publicar no exige estado elegible del proveedor.
	uc, _ := productFixture(entity.SupplierPending)

	out, err := uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name:  "Audífonos",
		Price: decimal.RequireFromString("25.50"),
		Stock: 10,
	})
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.True(t, decimal.Zero.Equal(out.Rating))
}

func TestProductCreate_PublicarConProveedorPendingFalla(t *testing.T) {
	uc, _ := productFixture(entity.SupplierPending)

	_, err := uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name:   "Audífonos",
		Price:  decimal.RequireFromString("25.50"),
		Stock:  10,
		Active: true,
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestProductCreate_PublicarConProveedorVerificado(t *testing.T) {
	uc, _ := productFixture(entity.SupplierVerified)

	out, err := uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name:   "Audífonos",
		Price:  decimal.RequireFromString("25.50"),
		Stock:  10,
		Active: true,
	})
	require.NoError(t, err)
	assert.True(t, out.Active)
}

func TestProductCreate_NombreDuplicadoPorProveedor(t *testing.T) {
	uc, _ := productFixture(entity.SupplierActive)

	_, err := uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name: "Audífonos", Price: decimal.NewFromInt(10), Stock: 1,
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name: "Audífonos", Price: decimal.NewFromInt(12), Stock: 5,
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := productFixture(entity.SupplierActive)

	_, err := uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name: "", Price: decimal.NewFromInt(10), Stock: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name: "X", Price: decimal.NewFromInt(-1), Stock: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(context.Background(), owner, "sup-1", dto.CreateProductRequest{
		Name: "X", Price: decimal.NewFromInt(10), Stock: 1, CategoryID: "fantasma",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductUpdate_ActivarPasaPorReglaDePublicacion(t *testing.T) {
	uc, products := productFixture(entity.SupplierPending)
	products.byID["prod-1"] = &entity.Product{
		ID: "prod-1", SupplierID: "sup-1", Name: "Audífonos",
		Price: decimal.NewFromInt(10), Active: false,
	}

	active := true
	_, err := uc.Update(context.Background(), owner, "prod-1", dto.UpdateProductRequest{Active: &active})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	// Editar sin activar sí se permite con proveedor pending.
	name := "Audífonos Pro"
	out, err := uc.Update(context.Background(), owner, "prod-1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Audífonos Pro", out.Name)
}

func TestProductUpdate_NoMiembroEsForbidden(t *testing.T) {
	uc, products := productFixture(entity.SupplierActive)
	products.byID["prod-1"] = &entity.Product{
		ID: "prod-1", SupplierID: "sup-1", Name: "Audífonos", Price: decimal.NewFromInt(10),
	}

	price := decimal.NewFromInt(99)
	_, err := uc.Update(context.Background(), authz.Principal{UserID: "user-9", Active: true}, "prod-1", dto.UpdateProductRequest{Price: &price})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestProductGetPublicByID_InactivoNoExisteParaElPublico(t *testing.T) {
	uc, products := productFixture(entity.SupplierActive)
	products.byID["prod-1"] = &entity.Product{
		ID: "prod-1", SupplierID: "sup-1", Name: "Audífonos",
		Price: decimal.NewFromInt(10), Active: false,
	}

	out, err := uc.GetPublicByID("prod-1")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductListPublic_SoloActivos(t *testing.T) {
	uc, products := productFixture(entity.SupplierActive)
	products.byID["a"] = &entity.Product{ID: "a", SupplierID: "sup-1", Name: "A", Price: decimal.NewFromInt(1), Active: true}
	products.byID["b"] = &entity.Product{ID: "b", SupplierID: "sup-1", Name: "B", Price: decimal.NewFromInt(1), Active: false}

	out, err := uc.ListPublic(context.Background(), "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "a", out.Items[0].ID)
}
