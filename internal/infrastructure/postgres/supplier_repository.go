package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
// La columna company_name_folded materializa la unicidad case-insensitive del
// nombre; el case folding lo calcula el caso de uso.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, company_name, contact_email, contact_phone, address, status, owner_user_id, commission_rate, payout_account, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier, nameFolded string) error {
	query := `
		INSERT INTO suppliers (id, company_name, company_name_folded, contact_email, contact_phone, address, status, owner_user_id, commission_rate, payout_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.CompanyName, nameFolded, supplier.ContactEmail, supplier.ContactPhone,
		supplier.Address, supplier.Status, supplier.OwnerUserID, supplier.CommissionRate,
		supplier.PayoutAccount, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get supplier")
}

// GetByFoldedName obtiene un proveedor por el nombre ya case-folded.
func (r *SupplierRepo) GetByFoldedName(nameFolded string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE company_name_folded = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, nameFolded), "get supplier by name")
}

// Update actualiza los datos de contacto y nombre del proveedor.
// El estado no se toca aquí (ver UpdateStatus).
func (r *SupplierRepo) Update(supplier *entity.Supplier, nameFolded string) error {
	query := `
		UPDATE suppliers SET company_name = $2, company_name_folded = $3, contact_email = $4, contact_phone = $5, address = $6, payout_account = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.CompanyName, nameFolded, supplier.ContactEmail,
		supplier.ContactPhone, supplier.Address, supplier.PayoutAccount, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado del ciclo de vida.
func (r *SupplierRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update supplier status: %w", err)
	}
	return nil
}

// List lista proveedores con paginación.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := scanSupplier(rows, &s); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor; productos, órdenes y managers caen por cascade.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) scanOne(row pgx.Row, op string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := scanSupplier(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

func scanSupplier(row pgx.Row, s *entity.Supplier) error {
	return row.Scan(
		&s.ID, &s.CompanyName, &s.ContactEmail, &s.ContactPhone, &s.Address,
		&s.Status, &s.OwnerUserID, &s.CommissionRate, &s.PayoutAccount,
		&s.CreatedAt, &s.UpdatedAt,
	)
}
