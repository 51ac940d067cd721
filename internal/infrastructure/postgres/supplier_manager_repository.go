package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.SupplierManagerRepository = (*SupplierManagerRepo)(nil)

// SupplierManagerRepo registro de membresía (supplier_id, user_id) sobre PostgreSQL.
type SupplierManagerRepo struct {
	q Querier
}

// NewSupplierManagerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierManagerRepository(q Querier) *SupplierManagerRepo {
	return &SupplierManagerRepo{q: q}
}

// Add inserta una fila de manager. PK compuesta (ErrDuplicate si ya existe).
func (r *SupplierManagerRepo) Add(manager *entity.SupplierManager) error {
	query := `
		INSERT INTO supplier_managers (supplier_id, user_id, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query,
		manager.SupplierID, manager.UserID, manager.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier manager: %w", err)
	}
	return nil
}

// Remove borra la fila; devuelve false si no existía.
func (r *SupplierManagerRepo) Remove(supplierID, userID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_managers WHERE supplier_id = $1 AND user_id = $2`,
		supplierID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete supplier manager: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Exists indica si el usuario tiene fila de manager para el proveedor.
func (r *SupplierManagerRepo) Exists(supplierID, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM supplier_managers WHERE supplier_id = $1 AND user_id = $2)`,
		supplierID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("supplier manager exists: %w", err)
	}
	return exists, nil
}

// ListBySupplier lista las filas de managers de un proveedor.
func (r *SupplierManagerRepo) ListBySupplier(supplierID string) ([]*entity.SupplierManager, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT supplier_id, user_id, created_at FROM supplier_managers WHERE supplier_id = $1`,
		supplierID,
	)
	if err != nil {
		return nil, fmt.Errorf("list supplier managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierManager
	for rows.Next() {
		var m entity.SupplierManager
		if err := rows.Scan(&m.SupplierID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier manager: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
