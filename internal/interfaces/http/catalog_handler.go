package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
)

// CatalogHandler lecturas públicas de catálogo (sin token).
type CatalogHandler struct {
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(productUC *usecase.ProductUseCase, categoryUC *usecase.CategoryUseCase) *CatalogHandler {
	return &CatalogHandler{productUC: productUC, categoryUC: categoryUC}
}

// ListProducts godoc
// @Summary      Listar productos activos del catálogo público
// @Tags         catalog
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.productUC.ListPublic(c.UserContext(), c.Query("category_id"), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto del catálogo público (inactivos = 404)
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.productUC.GetPublicByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// CategoryTree godoc
// @Summary      Árbol público de categorías activas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryTreeNode
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) CategoryTree(c *fiber.Ctx) error {
	out, err := h.categoryUC.Tree(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
