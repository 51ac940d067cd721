package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/suppliers/{id}/dashboard.
// Reducciones deterministas sobre settlements, órdenes y productos del
// proveedor; dos llamadas sin escrituras intermedias devuelven lo mismo.
type DashboardSummaryDTO struct {
	// Ventas liquidadas (settlements exitosos)
	TotalSales  decimal.Decimal `json:"total_sales"`  // suma de montos brutos
	TotalFees   decimal.Decimal `json:"total_fees"`   // comisión acumulada de la plataforma
	TotalPayout decimal.Decimal `json:"total_payout"` // neto acumulado del proveedor

	// Órdenes por estado (pending, paid, cancelled)
	OrdersByStatus map[string]int `json:"orders_by_status"`

	// Catálogo
	ActiveProducts int             `json:"active_products"`
	TotalStock     int64           `json:"total_stock"`
	AverageRating  decimal.Decimal `json:"average_rating"`

	// Ingreso mensual (buckets año-mes, más reciente primero)
	MonthlyIncome []MonthlyIncomeDTO `json:"monthly_income"`

	// Top productos por unidades vendidas
	TopProducts []TopProductDTO `json:"top_products"`

	// Productos con stock bajo el umbral configurado
	LowStock []LowStockProductDTO `json:"low_stock"`
}

// MonthlyIncomeDTO bucket de ingreso de un mes.
type MonthlyIncomeDTO struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Gross  decimal.Decimal `json:"gross"`
	Net    decimal.Decimal `json:"net"`
	Orders int             `json:"orders"`
}

// TopProductDTO producto del widget top por unidades vendidas.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// LowStockProductDTO alerta de stock bajo.
type LowStockProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int64  `json:"stock"`
}
