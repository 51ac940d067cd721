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

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo implementación del puerto SettlementRepository sobre PostgreSQL.
// Solo insert y lecturas: los settlements son inmutables.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

const settlementColumns = `id, order_id, supplier_id, gross_amount, fee_amount, net_amount, currency, gateway_txn_id, status, created_at`

// Create persiste un settlement. order_id es único: una orden se liquida una vez.
func (r *SettlementRepo) Create(settlement *entity.Settlement) error {
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		settlement.ID, settlement.OrderID, settlement.SupplierID, settlement.GrossAmount,
		settlement.FeeAmount, settlement.NetAmount, settlement.Currency,
		settlement.GatewayTxnID, settlement.Status, settlement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByID obtiene un settlement por ID.
func (r *SettlementRepo) GetByID(id string) (*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`
	var s entity.Settlement
	err := scanSettlement(r.q.QueryRow(context.Background(), query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return &s, nil
}

// ListBySupplier lista settlements del proveedor con paginación.
func (r *SettlementRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Settlement
	for rows.Next() {
		var s entity.Settlement
		if err := scanSettlement(rows, &s); err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func scanSettlement(row pgx.Row, s *entity.Settlement) error {
	return row.Scan(
		&s.ID, &s.OrderID, &s.SupplierID, &s.GrossAmount, &s.FeeAmount, &s.NetAmount,
		&s.Currency, &s.GatewayTxnID, &s.Status, &s.CreatedAt,
	)
}
