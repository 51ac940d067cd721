package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// ProductUseCase casos de uso de productos: CRUD de miembros del proveedor y
// catálogo público. Publicar (Active=true) exige proveedor verified/active.
type ProductUseCase struct {
	access       accessResolver
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        CatalogCache // nil = sin caché
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	managerRepo repository.SupplierManagerRepository,
	categoryRepo repository.CategoryRepository,
	cache CatalogCache,
) *ProductUseCase {
	return &ProductUseCase{
		access:       accessResolver{supplierRepo: supplierRepo, managerRepo: managerRepo},
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Create crea un producto bajo el proveedor. Nombre único por proveedor
// (ErrDuplicate); con Active=true la acción evaluada es publish, que además
// exige estado elegible del proveedor.
func (uc *ProductUseCase) Create(ctx context.Context, p authz.Principal, supplierID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	_, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return nil, err
	}
	action := authz.ActionProductCreate
	if in.Active {
		action = authz.ActionProductPublish
	}
	if err := authorize(p, action, res); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	existing, err := uc.productRepo.GetBySupplierAndName(supplierID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SupplierID:  supplierID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      in.Active,
		Featured:    in.Featured,
		Rating:      decimal.Zero,
		ReviewCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidateCatalog(ctx)
	return toProductResponse(product), nil
}

// Update actualiza un producto; requiere membresía del proveedor dueño.
// Activar un producto inactivo pasa por la regla de publicación.
func (uc *ProductUseCase) Update(ctx context.Context, p authz.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	_, res, err := uc.access.resolve(product.SupplierID, p)
	if err != nil {
		return nil, err
	}
	action := authz.ActionProductUpdate
	if in.Active != nil && *in.Active && !product.Active {
		action = authz.ActionProductPublish
	}
	if err := authorize(p, action, res); err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != product.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.productRepo.GetBySupplierAndName(product.SupplierID, *in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidateCatalog(ctx)
	return toProductResponse(product), nil
}

// Delete elimina un producto; requiere membresía del proveedor dueño.
func (uc *ProductUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	_, res, err := uc.access.resolve(product.SupplierID, p)
	if err != nil {
		return err
	}
	if err := authorize(p, authz.ActionProductDelete, res); err != nil {
		return err
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidateCatalog(ctx)
	return nil
}

// ListBySupplier lista el catálogo completo del proveedor (incluye inactivos);
// requiere membresía o admin.
func (uc *ProductUseCase) ListBySupplier(p authz.Principal, supplierID string, limit, offset int) (*dto.ProductListResponse, error) {
	_, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionSupplierView, res); err != nil {
		return nil, err
	}
	list, err := uc.productRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(list, limit, offset), nil
}

// ListPublic lista productos activos del catálogo público (cualquier
// principal, incluso anónimo). Primera línea de lectura: caché Redis.
func (uc *ProductUseCase) ListPublic(ctx context.Context, categoryID string, limit, offset int) (*dto.ProductListResponse, error) {
	key := fmt.Sprintf("%s:%s:%d:%d", cacheKeyProducts, categoryID, limit, offset)
	if uc.cache != nil {
		var cached dto.ProductListResponse
		if ok, err := uc.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	list, err := uc.productRepo.ListActive(categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := toProductListResponse(list, limit, offset)
	if uc.cache != nil {
		_ = uc.cache.SetJSON(ctx, key, out) // best-effort, la DB ya respondió
	}
	return out, nil
}

// GetPublicByID devuelve un producto del catálogo público; los inactivos no
// existen para el público (nil → 404 en el handler).
func (uc *ProductUseCase) GetPublicByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, nil
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) invalidateCatalog(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.InvalidatePrefix(ctx, cacheKeyProducts)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
		Featured:    p.Featured,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductListResponse(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
