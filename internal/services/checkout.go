package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutService interface {
	// Checkout snapshots the caller's cart into a pending order and returns
	// the signed gateway redirect. The client totals in req are advisory.
	Checkout(ctx context.Context, owner models.Identity, email string, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	gateway   payfast.Client
	payfast   config.PayFast
	checkout  config.Checkout
	now       func() time.Time
}

func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, gateway payfast.Client, payfastCfg config.PayFast, checkoutCfg config.Checkout) CheckoutService {
	if checkoutCfg.TaxRateBasisPoints <= 0 {
		checkoutCfg.TaxRateBasisPoints = DefaultTaxRateBasisPoints
	}
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		payfast:   payfastCfg,
		checkout:  checkoutCfg,
		now:       time.Now,
	}
}

// MaxOrderTotal is the largest grand total, in minor units, an order can carry.
const MaxOrderTotal int64 = 999_999_999_999

// GatewayReference is the merchant payment id sent to the gateway for an order.
func GatewayReference(orderID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s-%d", orderID, at.Unix())
}

// MinorToMajor converts an amount in minor units to a two-place decimal.
func MinorToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Checkout implements CheckoutService.
func (s *checkoutService) Checkout(ctx context.Context, owner models.Identity, email string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	logger := logging.FromContext(ctx)

	if !owner.IsAuthenticated() {
		metrics.RecordCheckout("unauthenticated")
		return nil, appErrors.UnauthorizedError("Authentication required")
	}

	items, err := s.cartRepo.ListItems(ctx, owner)
	if err != nil {
		metrics.RecordCheckout("error")
		if errors.Is(err, repository.ErrTableMissing) {
			return nil, appErrors.StoreUnavailableError("Cart store is unavailable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to read cart").WithError(err)
	}

	if len(items) == 0 {
		metrics.RecordCheckout("empty_cart")
		return nil, appErrors.BadRequestError("Cart is empty")
	}

	totals := ComputeTotals(items, s.checkout.TaxRateBasisPoints)
	if totals.Total > MaxOrderTotal {
		metrics.RecordCheckout("total_too_large")
		return nil, appErrors.BadRequestError("Cart total exceeds the maximum order amount")
	}

	if req != nil && (req.Subtotal != totals.Subtotal || req.Vat != totals.Tax || req.Total != totals.Total) {
		logger.Warn("Client totals disagree with server totals",
			slog.Int64("clientSubtotal", req.Subtotal),
			slog.Int64("clientVat", req.Vat),
			slog.Int64("clientTotal", req.Total),
			slog.Int64("subtotal", totals.Subtotal),
			slog.Int64("vat", totals.Tax),
			slog.Int64("total", totals.Total),
		)
	}

	orderID := uuid.New()
	reference := GatewayReference(orderID, s.now())

	order := &models.Order{
		ID:             orderID,
		UserID:         owner.UserID,
		TotalAmount:    MinorToMajor(totals.Total),
		Status:         models.OrderStatusPending,
		GatewayOrderID: &reference,
	}

	order.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       MinorToMajor(item.Price),
		})
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		metrics.RecordCheckout("error")
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	redirect, err := s.gateway.BuildPaymentRequest(&payfast.PaymentRequest{
		ReturnURL:       s.payfast.ReturnURL,
		CancelURL:       s.payfast.CancelURL,
		NotifyURL:       s.payfast.NotifyURL,
		EmailAddress:    email,
		PaymentID:       reference,
		Amount:          order.TotalAmount,
		ItemName:        fmt.Sprintf("%s order %s", s.checkout.StoreName, order.ID.String()[:8]),
		ItemDescription: describeItems(items),
		OrderReference:  order.ID.String(),
	})
	if err != nil {
		metrics.RecordCheckout("error")
		return nil, appErrors.InternalError("Failed to build payment request").WithError(err)
	}

	metrics.RecordCheckout("success")
	logger.Info("Checkout initiated",
		slog.String("orderId", order.ID.String()),
		slog.String("gatewayReference", reference),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)

	return &models.CheckoutResponse{
		Success:       true,
		OrderID:       order.ID,
		PaymentURL:    redirect.URL,
		PaymentFields: redirect.Fields,
	}, nil
}

func describeItems(items []models.CartLine) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", item.Quantity, utils.SanitizeText(item.ProductName)))
	}
	return strings.Join(parts, ", ")
}
