// Package analytics arma el resumen agregado del dashboard de proveedor.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// Options parámetros de los widgets, vienen de la configuración.
type Options struct {
	LowStockThreshold int
	TopProducts       int
	IncomeMonths      int
}

// DashboardUseCase caso de uso del resumen de dashboard. Las seis consultas de
// agregación corren en paralelo; ninguna muta estado, así que dos llamadas sin
// escrituras intermedias devuelven el mismo resumen.
type DashboardUseCase struct {
	supplierRepo  repository.SupplierRepository
	managerRepo   repository.SupplierManagerRepository
	dashboardRepo repository.DashboardRepository
	opts          Options
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	supplierRepo repository.SupplierRepository,
	managerRepo repository.SupplierManagerRepository,
	dashboardRepo repository.DashboardRepository,
	opts Options,
) *DashboardUseCase {
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = 5
	}
	if opts.TopProducts <= 0 {
		opts.TopProducts = 5
	}
	if opts.IncomeMonths <= 0 {
		opts.IncomeMonths = 6
	}
	return &DashboardUseCase{
		supplierRepo:  supplierRepo,
		managerRepo:   managerRepo,
		dashboardRepo: dashboardRepo,
		opts:          opts,
	}
}

// GetSummary devuelve el resumen del proveedor; requiere membresía o admin.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p authz.Principal, supplierID string) (*dto.DashboardSummaryDTO, error) {
	if err := uc.authorize(p, supplierID); err != nil {
		return nil, err
	}

	type salesOut struct {
		v   *repository.SalesTotalsResult
		err error
	}
	type statusOut struct {
		v   []repository.OrderStatusCount
		err error
	}
	type statsOut struct {
		v   *repository.ProductStatsResult
		err error
	}
	type incomeOut struct {
		v   []repository.MonthlyIncomeResult
		err error
	}
	type topOut struct {
		v   []dto.TopProductDTO
		err error
	}
	type lowOut struct {
		v   []dto.LowStockProductDTO
		err error
	}

	salesCh := make(chan salesOut, 1)
	statusCh := make(chan statusOut, 1)
	statsCh := make(chan statsOut, 1)
	incomeCh := make(chan incomeOut, 1)
	topCh := make(chan topOut, 1)
	lowCh := make(chan lowOut, 1)

	go func() {
		v, err := uc.dashboardRepo.GetSalesTotals(ctx, supplierID)
		salesCh <- salesOut{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.CountOrdersByStatus(ctx, supplierID)
		statusCh <- statusOut{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.GetProductStats(ctx, supplierID)
		statsCh <- statsOut{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.GetMonthlyIncome(ctx, supplierID, uc.opts.IncomeMonths)
		incomeCh <- incomeOut{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.GetTopProducts(ctx, supplierID, uc.opts.TopProducts)
		topCh <- topOut{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.GetLowStock(ctx, supplierID, uc.opts.LowStockThreshold)
		lowCh <- lowOut{v, err}
	}()

	sales := <-salesCh
	statuses := <-statusCh
	stats := <-statsCh
	income := <-incomeCh
	top := <-topCh
	low := <-lowCh

	for _, err := range []error{sales.err, statuses.err, stats.err, income.err, top.err, low.err} {
		if err != nil {
			return nil, fmt.Errorf("consulta de dashboard: %w", err)
		}
	}

	byStatus := make(map[string]int, len(statuses.v))
	for _, s := range statuses.v {
		byStatus[s.Status] = s.Count
	}
	monthly := make([]dto.MonthlyIncomeDTO, 0, len(income.v))
	for _, m := range income.v {
		monthly = append(monthly, dto.MonthlyIncomeDTO{
			Year:   m.Year,
			Month:  m.Month,
			Gross:  m.Gross,
			Net:    m.Net,
			Orders: m.Orders,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalSales:     sales.v.Gross,
		TotalFees:      sales.v.Fee,
		TotalPayout:    sales.v.Net,
		OrdersByStatus: byStatus,
		ActiveProducts: stats.v.ActiveCount,
		TotalStock:     stats.v.TotalStock,
		AverageRating:  stats.v.AvgRating,
		MonthlyIncome:  monthly,
		TopProducts:    top.v,
		LowStock:       low.v,
	}, nil
}

func (uc *DashboardUseCase) authorize(p authz.Principal, supplierID string) error {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	member := false
	if p.UserID != "" && p.UserID != supplier.OwnerUserID {
		member, err = uc.managerRepo.Exists(supplierID, p.UserID)
		if err != nil {
			return err
		}
	}
	d := authz.Authorize(p, authz.ActionDashboardView, authz.Resource{
		SupplierID:     supplier.ID,
		OwnerUserID:    supplier.OwnerUserID,
		SupplierStatus: supplier.Status,
		Member:         member,
	})
	if !d.Allowed {
		return fmt.Errorf("%s: %w", d.Reason, domain.ErrForbidden)
	}
	return nil
}
