package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
)

// SalesTotalsResult acumulados de settlements exitosos de un proveedor.
type SalesTotalsResult struct {
	Gross       decimal.Decimal
	Fee         decimal.Decimal
	Net         decimal.Decimal
	Settlements int
}

// OrderStatusCount número de órdenes por estado.
type OrderStatusCount struct {
	Status string
	Count  int
}

// ProductStatsResult métricas agregadas del catálogo del proveedor.
type ProductStatsResult struct {
	ActiveCount int
	TotalStock  int64
	AvgRating   decimal.Decimal
}

// MonthlyIncomeResult bucket de ingreso por año-mes.
type MonthlyIncomeResult struct {
	Year   int
	Month  int
	Gross  decimal.Decimal
	Net    decimal.Decimal
	Orders int
}

// DashboardRepository consultas read-only de agregación para el dashboard de
// proveedor. Todas las consultas están acotadas por supplier_id; la autorización
// ya ocurrió aguas arriba.
type DashboardRepository interface {
	GetSalesTotals(ctx context.Context, supplierID string) (*SalesTotalsResult, error)
	CountOrdersByStatus(ctx context.Context, supplierID string) ([]OrderStatusCount, error)
	GetProductStats(ctx context.Context, supplierID string) (*ProductStatsResult, error)
	GetMonthlyIncome(ctx context.Context, supplierID string, months int) ([]MonthlyIncomeResult, error)
	GetTopProducts(ctx context.Context, supplierID string, limit int) ([]dto.TopProductDTO, error)
	GetLowStock(ctx context.Context, supplierID string, threshold int) ([]dto.LowStockProductDTO, error)
}
