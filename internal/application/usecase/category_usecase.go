package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// maxCategoryDepth corta la caminata de ancestros ante datos corruptos.
const maxCategoryDepth = 100

// CategoryUseCase casos de uso de categorías. Las mutaciones llegan solo por
// rutas admin; el árbol público es de lectura libre y cacheable.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        CatalogCache // nil = sin caché
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, cache CatalogCache) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo, cache: cache}
}

// Create crea una categoría. Nombre único global (ErrDuplicate); el padre,
// si viene, debe existir.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		Status:    entity.CategoryActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toCategoryResponse(category), nil
}

// GetByID devuelve una categoría por id.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Update actualiza nombre, padre o estado. Re-parentar valida que el nuevo
// padre exista y que la cadena de ancestros no vuelva a la propia categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != category.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.categoryRepo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != category.ID {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.ParentID != nil && *in.ParentID != category.ParentID {
		if err := uc.checkNoCycle(category.ID, *in.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = *in.ParentID
	}
	if in.Status != nil {
		if *in.Status != entity.CategoryActive && *in.Status != entity.CategoryInactive {
			return nil, domain.ErrInvalidInput
		}
		category.Status = *in.Status
	}
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toCategoryResponse(category), nil
}

// Delete borra una categoría sin hijos ni productos que la referencien
// (ErrConflict en ambos casos).
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	all, err := uc.categoryRepo.ListAll()
	if err != nil {
		return err
	}
	for _, c := range all {
		if c.ParentID == id {
			return domain.ErrConflict
		}
	}
	count, err := uc.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	if err := uc.categoryRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// List lista todas las categorías planas (vista admin).
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	all, err := uc.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(all))
	for _, c := range all {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Tree arma el árbol público de categorías activas, cacheado en Redis.
func (uc *CategoryUseCase) Tree(ctx context.Context) ([]dto.CategoryTreeNode, error) {
	if uc.cache != nil {
		var cached []dto.CategoryTreeNode
		if ok, err := uc.cache.GetJSON(ctx, cacheKeyCategories, &cached); err == nil && ok {
			return cached, nil
		}
	}
	all, err := uc.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	tree := buildTree(all)
	if uc.cache != nil {
		_ = uc.cache.SetJSON(ctx, cacheKeyCategories, tree)
	}
	return tree, nil
}

// checkNoCycle valida que parentID no sea la propia categoría ni un
// descendiente suyo, caminando la cadena de ancestros hasta la raíz.
func (uc *CategoryUseCase) checkNoCycle(categoryID, parentID string) error {
	if parentID == "" {
		return nil // pasar a raíz siempre es válido
	}
	if parentID == categoryID {
		return domain.ErrInvalidInput
	}
	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxCategoryDepth {
			return domain.ErrInvalidInput
		}
		node, err := uc.categoryRepo.GetByID(current)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}
		if node.ParentID == categoryID {
			return domain.ErrInvalidInput
		}
		current = node.ParentID
	}
	return nil
}

func (uc *CategoryUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.InvalidatePrefix(ctx, cacheKeyCategories)
}

// buildTree arma el árbol en dos pasadas; las categorías inactivas y sus
// subárboles no aparecen en la vista pública.
func buildTree(all []*entity.Category) []dto.CategoryTreeNode {
	children := make(map[string][]*entity.Category)
	for _, c := range all {
		if c.Status != entity.CategoryActive {
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}
	var build func(parentID string) []dto.CategoryTreeNode
	build = func(parentID string) []dto.CategoryTreeNode {
		nodes := make([]dto.CategoryTreeNode, 0, len(children[parentID]))
		for _, c := range children[parentID] {
			nodes = append(nodes, dto.CategoryTreeNode{
				ID:       c.ID,
				Name:     c.Name,
				Children: build(c.ID),
			})
		}
		return nodes
	}
	return build("")
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
