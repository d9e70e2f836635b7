package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	// GetOrder returns an order owned by userID. Orders of other users are
	// reported as not found.
	GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page, size int) (*models.OrderListResponse, error)
	ListAllOrders(ctx context.Context, page, size int) (*models.OrderListResponse, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewOrderService builds the order read surface. orders may be nil to disable
// caching of single orders.
func NewOrderService(orderRepo repository.OrderRepository, orders cache.Cache, cacheTTL time.Duration) OrderService {
	return &orderService{orderRepo: orderRepo, cache: orders, cacheTTL: cacheTTL}
}

// GetOrder implements OrderService.
func (s *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

// GetOrderByID implements OrderService. It performs no ownership check. Only
// settled orders are served from the cache, so a pending read always reaches
// the store.
func (s *orderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {

	logger := logging.FromContext(ctx)
	key := cache.OrderKey(orderID)

	if s.cache != nil {
		var cached models.Order
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Order cache read failed", slog.String("error", err.Error()))
		} else if found && cached.Status.IsTerminal() {
			return &cached, nil
		}
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// a pending order can settle at any moment, so only settled ones are cached
	if s.cache != nil && order.Status.IsTerminal() {
		if err := s.cache.Set(ctx, key, order, s.cacheTTL); err != nil {
			logger.Warn("Order cache write failed", slog.String("error", err.Error()))
		}
	}

	return order, nil
}

// ListOrders implements OrderService.
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) (*models.OrderListResponse, error) {

	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderListResponse{Orders: orders, Total: total, Page: page, PageSize: size}, nil
}

// ListAllOrders implements OrderService.
func (s *orderService) ListAllOrders(ctx context.Context, page, size int) (*models.OrderListResponse, error) {

	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderListResponse{Orders: orders, Total: total, Page: page, PageSize: size}, nil
}

// UpdateOrderStatus implements OrderService. It is the back-office override:
// settled orders may move between terminal states but never back to pending.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if !status.IsTerminal() {
		return nil, appErrors.ValidationError("Orders can only be moved to completed, failed or cancelled")
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	metrics.RecordOrderTransition(string(status))

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.OrderKey(orderID)); err != nil {
			logging.FromContext(ctx).Warn("Failed to evict cached order", slog.String("error", err.Error()))
		}
	}

	return order, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	return page, size
}
