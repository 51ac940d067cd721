package dto

import "time"

// CreateCategoryRequest alta de categoría (solo admin).
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"` // vacío = raíz
}

// UpdateCategoryRequest actualización parcial; re-parentar valida ciclos.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parent_id"`
	Status   *string `json:"status"`
}

// CategoryResponse representación plana de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTreeNode nodo del árbol público de categorías.
type CategoryTreeNode struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Children []CategoryTreeNode `json:"children,omitempty"`
}
