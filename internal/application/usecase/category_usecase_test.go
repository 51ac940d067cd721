package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// fakeCategoryRepo repositorio en memoria para los tests del caso de uso.
type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func newFakeCategoryRepo(cats ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: make(map[string]*entity.Category)}
	for _, c := range cats {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.byID[id], nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) ListAll() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// fakeProductCounter solo responde CountByCategory; el resto no se usa aquí.
type fakeProductCounter struct {
	counts map[string]int
}

func (r *fakeProductCounter) Create(*entity.Product) error                   { return nil }
func (r *fakeProductCounter) GetByID(string) (*entity.Product, error)        { return nil, nil }
func (r *fakeProductCounter) Update(*entity.Product) error                   { return nil }
func (r *fakeProductCounter) DecrementStock(string, int64) (bool, error)     { return false, nil }
func (r *fakeProductCounter) Delete(string) error                            { return nil }
func (r *fakeProductCounter) CountByCategory(id string) (int, error)         { return r.counts[id], nil }
func (r *fakeProductCounter) GetBySupplierAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductCounter) ListBySupplier(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductCounter) ListActive(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func cat(id, parentID, name string) *entity.Category {
	return &entity.Category{ID: id, ParentID: parentID, Name: name, Status: entity.CategoryActive}
}

func str(s string) *string { return &s }

// Jerarquía de prueba: raiz → hijo → nieto, más una hermana suelta.
func newCategoryFixture() (*CategoryUseCase, *fakeCategoryRepo, *fakeProductCounter) {
	repo := newFakeCategoryRepo(
		cat("raiz", "", "Electrónica"),
		cat("hijo", "raiz", "Audio"),
		cat("nieto", "hijo", "Audífonos"),
		cat("hermana", "", "Hogar"),
	)
	products := &fakeProductCounter{counts: map[string]int{}}
	return NewCategoryUseCase(repo, products, nil), repo, products
}

func TestCategoryUpdate_ReparentarASuDescendienteFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Update(context.Background(), "raiz", dto.UpdateCategoryRequest{ParentID: str("nieto")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Update(context.Background(), "raiz", dto.UpdateCategoryRequest{ParentID: str("hijo")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategoryUpdate_ReparentarASiMismaFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Update(context.Background(), "hijo", dto.UpdateCategoryRequest{ParentID: str("hijo")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategoryUpdate_ReparentarValidoFunciona(t *testing.T) {
	uc, repo, _ := newCategoryFixture()

	// nieto pasa a colgar de hermana (rama distinta): sin ciclo.
	out, err := uc.Update(context.Background(), "nieto", dto.UpdateCategoryRequest{ParentID: str("hermana")})
	require.NoError(t, err)
	assert.Equal(t, "hermana", out.ParentID)
	assert.Equal(t, "hermana", repo.byID["nieto"].ParentID)

	// Pasar a raíz siempre es válido.
	out, err = uc.Update(context.Background(), "hijo", dto.UpdateCategoryRequest{ParentID: str("")})
	require.NoError(t, err)
	assert.Equal(t, "", out.ParentID)
}

func TestCategoryUpdate_PadreInexistenteFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Update(context.Background(), "hijo", dto.UpdateCategoryRequest{ParentID: str("fantasma")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategoryUpdate_EstadoInvalidoFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Update(context.Background(), "hijo", dto.UpdateCategoryRequest{Status: str("archivada")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategoryDelete_ConHijosFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	err := uc.Delete(context.Background(), "raiz")
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCategoryDelete_ConProductosFalla(t *testing.T) {
	uc, _, products := newCategoryFixture()
	products.counts["nieto"] = 3

	err := uc.Delete(context.Background(), "nieto")
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCategoryDelete_HojaVaciaFunciona(t *testing.T) {
	uc, repo, _ := newCategoryFixture()

	err := uc.Delete(context.Background(), "nieto")
	require.NoError(t, err)
	assert.Nil(t, repo.byID["nieto"])
}

func TestCategoryCreate_NombreDuplicadoFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Audio"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCategoryCreate_PadreInexistenteFalla(t *testing.T) {
	uc, _, _ := newCategoryFixture()

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Nueva", ParentID: "fantasma"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategoryTree_ExcluyeInactivasYSusSubarboles(t *testing.T) {
	repo := newFakeCategoryRepo(
		cat("a", "", "Activa"),
		cat("b", "a", "HijaActiva"),
		&entity.Category{ID: "c", ParentID: "", Name: "Inactiva", Status: entity.CategoryInactive},
		cat("d", "c", "HijaDeInactiva"),
	)
	uc := NewCategoryUseCase(repo, &fakeProductCounter{counts: map[string]int{}}, nil)

	tree, err := uc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "a", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "b", tree[0].Children[0].ID)
}
