package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/authz"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"github.com/jhoicas/marketplace-api/internal/domain/settlement"
)

// OrderTxRunner ejecuta fn dentro de una transacción de DB, entregando
// repositorios atados a esa transacción. Un error de fn hace rollback.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error) error
}

// OrderUseCase casos de uso de órdenes: colocación con descuento atómico de
// stock y listados por proveedor y por comprador.
type OrderUseCase struct {
	access      accessResolver
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	txRunner    OrderTxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	supplierRepo repository.SupplierRepository,
	managerRepo repository.SupplierManagerRepository,
	txRunner OrderTxRunner,
) *OrderUseCase {
	return &OrderUseCase{
		access:      accessResolver{supplierRepo: supplierRepo, managerRepo: managerRepo},
		productRepo: productRepo,
		orderRepo:   orderRepo,
		txRunner:    txRunner,
	}
}

// Place coloca una orden pending descontando stock en la misma transacción.
// El descuento es condicional (stock >= cantidad); si no alcanza, la orden no
// se crea y se devuelve ErrInsufficientStock. Dos compradores concurrentes
// sobre la última unidad: exactamente uno gana.
func (uc *OrderUseCase) Place(ctx context.Context, p authz.Principal, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	currency := settlement.Normalize(in.Currency)
	if !settlement.Supported(currency) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	supplier, _, err := uc.access.resolve(product.SupplierID, p)
	if err != nil {
		return nil, err
	}
	// Proveedor suspendido o pendiente: el producto sigue en DB pero no se
	// puede comprar.
	if !supplier.CanPublish() {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		SupplierID:  product.SupplierID,
		BuyerUserID: p.UserID,
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		UnitPrice:   product.Price,
		TotalAmount: product.Price.Mul(decimal.NewFromInt(in.Quantity)),
		Currency:    currency,
		Status:      entity.OrderPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.RunOrder(ctx, func(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		ok, err := productRepo.DecrementStock(order.ProductID, order.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID devuelve una orden visible para su comprador, los miembros del
// proveedor o un admin.
func (uc *OrderUseCase) GetByID(p authz.Principal, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BuyerUserID != p.UserID {
		_, res, err := uc.access.resolve(order.SupplierID, p)
		if err != nil {
			return nil, err
		}
		if err := authorize(p, authz.ActionOrderList, res); err != nil {
			return nil, err
		}
	}
	return toOrderResponse(order), nil
}

// ListBySupplier lista las órdenes del proveedor; requiere membresía o admin.
func (uc *OrderUseCase) ListBySupplier(p authz.Principal, supplierID string, limit, offset int) (*dto.OrderListResponse, error) {
	_, res, err := uc.access.resolve(supplierID, p)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, authz.ActionOrderList, res); err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(list, limit, offset), nil
}

// ListMine lista las órdenes del comprador autenticado.
func (uc *OrderUseCase) ListMine(p authz.Principal, limit, offset int) (*dto.OrderListResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.orderRepo.ListByBuyer(p.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(list, limit, offset), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		BuyerUserID: o.BuyerUserID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrderListResponse(list []*entity.Order, limit, offset int) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
