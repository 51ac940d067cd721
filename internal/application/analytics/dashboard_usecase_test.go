package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

type fakeSupplierRepo struct {
	supplier *entity.Supplier
}

func (r *fakeSupplierRepo) Create(*entity.Supplier, string) error { return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if r.supplier != nil && r.supplier.ID == id {
		return r.supplier, nil
	}
	return nil, nil
}
func (r *fakeSupplierRepo) GetByFoldedName(string) (*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(*entity.Supplier, string) error            { return nil }
func (r *fakeSupplierRepo) UpdateStatus(string, string) error                { return nil }
func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error)        { return nil, nil }
func (r *fakeSupplierRepo) Delete(string) error                              { return nil }

type fakeManagerRepo struct {
	members map[string]bool
}

func (r *fakeManagerRepo) Add(*entity.SupplierManager) error     { return nil }
func (r *fakeManagerRepo) Remove(string, string) (bool, error)   { return false, nil }
func (r *fakeManagerRepo) Exists(_, userID string) (bool, error) { return r.members[userID], nil }
func (r *fakeManagerRepo) ListBySupplier(string) ([]*entity.SupplierManager, error) {
	return nil, nil
}

// fakeDashboardRepo devuelve datos fijos; errs inyecta el fallo de una consulta.
type fakeDashboardRepo struct {
	errs map[string]error
}

func (r *fakeDashboardRepo) GetSalesTotals(context.Context, string) (*repository.SalesTotalsResult, error) {
	if err := r.errs["sales"]; err != nil {
		return nil, err
	}
	return &repository.SalesTotalsResult{
		Gross:       decimal.RequireFromString("150.00"),
		Fee:         decimal.RequireFromString("15.00"),
		Net:         decimal.RequireFromString("135.00"),
		Settlements: 2,
	}, nil
}

func (r *fakeDashboardRepo) CountOrdersByStatus(context.Context, string) ([]repository.OrderStatusCount, error) {
	if err := r.errs["status"]; err != nil {
		return nil, err
	}
	return []repository.OrderStatusCount{
		{Status: entity.OrderPending, Count: 3},
		{Status: entity.OrderPaid, Count: 2},
	}, nil
}

func (r *fakeDashboardRepo) GetProductStats(context.Context, string) (*repository.ProductStatsResult, error) {
	if err := r.errs["stats"]; err != nil {
		return nil, err
	}
	return &repository.ProductStatsResult{
		ActiveCount: 4,
		TotalStock:  120,
		AvgRating:   decimal.RequireFromString("4.5"),
	}, nil
}

func (r *fakeDashboardRepo) GetMonthlyIncome(_ context.Context, _ string, months int) ([]repository.MonthlyIncomeResult, error) {
	if err := r.errs["income"]; err != nil {
		return nil, err
	}
	return []repository.MonthlyIncomeResult{
		{Year: 2026, Month: 8, Gross: decimal.RequireFromString("100.00"), Net: decimal.RequireFromString("90.00"), Orders: 1},
		{Year: 2026, Month: 7, Gross: decimal.RequireFromString("50.00"), Net: decimal.RequireFromString("45.00"), Orders: 1},
	}, nil
}

func (r *fakeDashboardRepo) GetTopProducts(_ context.Context, _ string, limit int) ([]dto.TopProductDTO, error) {
	if err := r.errs["top"]; err != nil {
		return nil, err
	}
	return []dto.TopProductDTO{{
		ProductID:    "prod-1",
		ProductName:  "Audífonos",
		QuantitySold: 7,
		TotalRevenue: decimal.RequireFromString("178.50"),
	}}, nil
}

func (r *fakeDashboardRepo) GetLowStock(_ context.Context, _ string, threshold int) ([]dto.LowStockProductDTO, error) {
	if err := r.errs["low"]; err != nil {
		return nil, err
	}
	return []dto.LowStockProductDTO{{ProductID: "prod-2", ProductName: "Cables", Stock: 2}}, nil
}

func dashboardFixture(errs map[string]error) *DashboardUseCase {
	return NewDashboardUseCase(
		&fakeSupplierRepo{supplier: &entity.Supplier{
			ID:          "sup-1",
			CompanyName: "Café Andino SAS",
			Status:      entity.SupplierActive,
			OwnerUserID: "owner-1",
		}},
		&fakeManagerRepo{members: map[string]bool{"mgr-1": true}},
		&fakeDashboardRepo{errs: errs},
		Options{},
	)
}

var owner = authz.Principal{UserID: "owner-1", Active: true}

func TestGetSummary_ArmaElResumen(t *testing.T) {
	uc := dashboardFixture(nil)

	out, err := uc.GetSummary(context.Background(), owner, "sup-1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.00").Equal(out.TotalSales))
	assert.True(t, decimal.RequireFromString("15.00").Equal(out.TotalFees))
	assert.True(t, decimal.RequireFromString("135.00").Equal(out.TotalPayout))
	assert.Equal(t, map[string]int{entity.OrderPending: 3, entity.OrderPaid: 2}, out.OrdersByStatus)
	assert.Equal(t, 4, out.ActiveProducts)
	assert.EqualValues(t, 120, out.TotalStock)
	require.Len(t, out.MonthlyIncome, 2)
	assert.Equal(t, 8, out.MonthlyIncome[0].Month)
	require.Len(t, out.TopProducts, 1)
	require.Len(t, out.LowStock, 1)
}

func TestGetSummary_LecturaIdempotente(t *testing.T) {
	// Sin escrituras intermedias, dos llamadas devuelven el mismo resumen.
	uc := dashboardFixture(nil)

	first, err := uc.GetSummary(context.Background(), owner, "sup-1")
	require.NoError(t, err)
	second, err := uc.GetSummary(context.Background(), owner, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetSummary_FalloDeUnaConsultaSePropaga(t *testing.T) {
	// Cualquiera de las seis consultas paralelas que falle tumba el resumen
	// completo con el error envuelto.
	for _, q := range []string{"sales", "status", "stats", "income", "top", "low"} {
		boom := errors.New("timeout de consulta")
		uc := dashboardFixture(map[string]error{q: boom})

		_, err := uc.GetSummary(context.Background(), owner, "sup-1")
		require.Error(t, err, "consulta %s", q)
		assert.True(t, errors.Is(err, boom), "consulta %s", q)
	}
}

func TestGetSummary_RequiereMembresia(t *testing.T) {
	uc := dashboardFixture(nil)

	_, err := uc.GetSummary(context.Background(), authz.Principal{UserID: "user-9", Active: true}, "sup-1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = uc.GetSummary(context.Background(), authz.Principal{UserID: "mgr-1", Active: true}, "sup-1")
	assert.NoError(t, err)
}

func TestGetSummary_ProveedorInexistente(t *testing.T) {
	uc := dashboardFixture(nil)

	_, err := uc.GetSummary(context.Background(), owner, "fantasma")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
