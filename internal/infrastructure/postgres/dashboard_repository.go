package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura de agregación para el dashboard de proveedor.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de agregaciones.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetSalesTotals acumula bruto, comisión y neto de los settlements exitosos.
// COALESCE devuelve ceros si el proveedor aún no liquidó nada.
func (r *DashboardRepo) GetSalesTotals(ctx context.Context, supplierID string) (*repository.SalesTotalsResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(gross_amount), 0) AS gross,
	    COALESCE(SUM(fee_amount),   0) AS fee,
	    COALESCE(SUM(net_amount),   0) AS net,
	    COUNT(*)                       AS settlements
	FROM settlements
	WHERE supplier_id = $1 AND status = $2`

	var res repository.SalesTotalsResult
	err := r.pool.QueryRow(ctx, query, supplierID, entity.SettlementSucceeded).
		Scan(&res.Gross, &res.Fee, &res.Net, &res.Settlements)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetSalesTotals: %w", err)
	}
	return &res, nil
}

// CountOrdersByStatus cuenta órdenes del proveedor agrupadas por estado.
func (r *DashboardRepo) CountOrdersByStatus(ctx context.Context, supplierID string) ([]repository.OrderStatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM orders
	WHERE supplier_id = $1
	GROUP BY status`

	rows, err := r.pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("dashboard.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()
	var results []repository.OrderStatusCount
	for rows.Next() {
		var row repository.OrderStatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("dashboard.CountOrdersByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetProductStats devuelve métricas agregadas del catálogo del proveedor.
// El rating promedio se calcula solo sobre productos con reseñas.
func (r *DashboardRepo) GetProductStats(ctx context.Context, supplierID string) (*repository.ProductStatsResult, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE active)                                        AS active_count,
	    COALESCE(SUM(stock), 0)                                               AS total_stock,
	    COALESCE(AVG(rating) FILTER (WHERE review_count > 0), 0)              AS avg_rating
	FROM products
	WHERE supplier_id = $1`

	var res repository.ProductStatsResult
	err := r.pool.QueryRow(ctx, query, supplierID).
		Scan(&res.ActiveCount, &res.TotalStock, &res.AvgRating)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetProductStats: %w", err)
	}
	return &res, nil
}

// GetMonthlyIncome agrupa settlements por año-mes, últimos `months` meses,
// más reciente primero.
func (r *DashboardRepo) GetMonthlyIncome(ctx context.Context, supplierID string, months int) ([]repository.MonthlyIncomeResult, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR  FROM created_at)::INT  AS year,
	    EXTRACT(MONTH FROM created_at)::INT  AS month,
	    COALESCE(SUM(gross_amount), 0)       AS gross,
	    COALESCE(SUM(net_amount),   0)       AS net,
	    COUNT(*)                             AS orders
	FROM settlements
	WHERE supplier_id = $1
	  AND status = $2
	  AND created_at >= date_trunc('month', now()) - make_interval(months => $3 - 1)
	GROUP BY year, month
	ORDER BY year DESC, month DESC`

	rows, err := r.pool.Query(ctx, query, supplierID, entity.SettlementSucceeded, months)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetMonthlyIncome: %w", err)
	}
	defer rows.Close()
	var results []repository.MonthlyIncomeResult
	for rows.Next() {
		var row repository.MonthlyIncomeResult
		if err := rows.Scan(&row.Year, &row.Month, &row.Gross, &row.Net, &row.Orders); err != nil {
			return nil, fmt.Errorf("dashboard.GetMonthlyIncome scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con más unidades vendidas en
// órdenes pagadas.
func (r *DashboardRepo) GetTopProducts(ctx context.Context, supplierID string, limit int) ([]dto.TopProductDTO, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(SUM(o.quantity), 0)     AS quantity_sold,
	    COALESCE(SUM(o.total_amount), 0) AS total_revenue
	FROM orders o
	JOIN products p ON p.id = o.product_id
	WHERE o.supplier_id = $1 AND o.status = $2
	GROUP BY p.id, p.name
	ORDER BY quantity_sold DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, supplierID, entity.OrderPaid, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetTopProducts: %w", err)
	}
	defer rows.Close()
	var results []dto.TopProductDTO
	for rows.Next() {
		var row dto.TopProductDTO
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("dashboard.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStock lista productos activos con stock bajo el umbral, los más
// críticos primero.
func (r *DashboardRepo) GetLowStock(ctx context.Context, supplierID string, threshold int) ([]dto.LowStockProductDTO, error) {
	const query = `
	SELECT id, name, stock
	FROM products
	WHERE supplier_id = $1 AND active AND stock < $2
	ORDER BY stock ASC`

	rows, err := r.pool.Query(ctx, query, supplierID, threshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetLowStock: %w", err)
	}
	defer rows.Close()
	var results []dto.LowStockProductDTO
	for rows.Next() {
		var row dto.LowStockProductDTO
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Stock); err != nil {
			return nil, fmt.Errorf("dashboard.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
