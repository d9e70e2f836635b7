package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	"github.com/shopspring/decimal"
)

// amountTolerance is the largest gross amount difference accepted between a
// notification and its order.
var amountTolerance = decimal.New(1, -2)

type PaymentService interface {
	// HandleNotification reconciles one gateway notification with its order.
	// Replays of an already recorded gateway transaction are acknowledged
	// without side effects.
	HandleNotification(ctx context.Context, fields map[string]string) (*models.NotificationResult, error)
}

type PaymentOptions struct {
	// ValidateWithGateway posts each verified notification back to the
	// gateway before acting on it.
	ValidateWithGateway bool
	// MarkerTTL bounds how long processed transaction ids stay in the cache.
	MarkerTTL time.Duration
}

type paymentService struct {
	orderRepo repository.OrderRepository
	txnRepo   repository.TransactionRepository
	gateway   payfast.Client
	cache     cache.Cache
	notifier  NotificationService
	opts      PaymentOptions
}

// NewPaymentService wires the notification handler. markers and notifier may be
// nil, in which case deduplication relies on the database alone and no
// confirmation email is sent.
func NewPaymentService(orderRepo repository.OrderRepository, txnRepo repository.TransactionRepository, gateway payfast.Client, markers cache.Cache, notifier NotificationService, opts PaymentOptions) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		txnRepo:   txnRepo,
		gateway:   gateway,
		cache:     markers,
		notifier:  notifier,
		opts:      opts,
	}
}

// MapPaymentStatus maps a gateway payment status onto a transaction status.
// Unknown statuses are treated as pending so they never advance an order.
func MapPaymentStatus(status string) models.TransactionStatus {
	switch status {
	case payfast.StatusComplete:
		return models.TransactionStatusCompleted
	case payfast.StatusFailed:
		return models.TransactionStatusFailed
	case payfast.StatusCancelled:
		return models.TransactionStatusCancelled
	default:
		return models.TransactionStatusPending
	}
}

// HandleNotification implements PaymentService.
func (s *paymentService) HandleNotification(ctx context.Context, fields map[string]string) (*models.NotificationResult, error) {

	logger := logging.FromContext(ctx)

	if !s.gateway.VerifySignature(fields) {
		metrics.RecordNotification("invalid_signature")
		logger.Warn("Payment notification signature mismatch",
			slog.String("event", "security"),
			slog.String("paymentId", fields[payfast.FieldPaymentID]),
			slog.String("gatewayId", fields[payfast.FieldGatewayID]),
		)
		return nil, appErrors.SignatureError("Invalid notification signature")
	}

	notification, err := payfast.ParseNotification(fields)
	if err != nil {
		metrics.RecordNotification("invalid")
		return nil, appErrors.ValidationError("Invalid payment notification").WithDetail(err.Error()).WithError(err)
	}

	logger = logger.With(
		slog.String("paymentId", notification.PaymentID),
		slog.String("gatewayId", notification.GatewayID),
		slog.String("paymentStatus", notification.PaymentStatus),
	)

	if s.opts.ValidateWithGateway {
		if err := s.gateway.ValidateNotification(ctx, fields); err != nil {
			if errors.Is(err, payfast.ErrNotValid) {
				metrics.RecordNotification("not_confirmed")
				logger.Warn("Gateway did not confirm notification", slog.String("event", "security"))
				return nil, appErrors.BadRequestError("Notification was not confirmed by the gateway").WithError(err)
			}
			metrics.RecordNotification("error")
			return nil, appErrors.ThirdPartyError("Failed to validate notification with gateway").WithError(err)
		}
	}

	if s.alreadyProcessed(ctx, notification.GatewayID) {
		metrics.RecordNotification(string(models.NotificationDuplicate))
		logger.Info("Duplicate payment notification acknowledged", slog.String("source", "cache"))
		return &models.NotificationResult{Outcome: models.NotificationDuplicate}, nil
	}

	existing, err := s.txnRepo.GetByGatewayTransactionID(ctx, notification.GatewayID)
	switch {
	case err == nil:
		s.markProcessed(ctx, notification.GatewayID)
		metrics.RecordNotification(string(models.NotificationDuplicate))
		logger.Info("Duplicate payment notification acknowledged", slog.String("source", "database"))
		return &models.NotificationResult{Outcome: models.NotificationDuplicate, Transaction: existing}, nil
	case !errors.Is(err, repository.ErrNotFound):
		metrics.RecordNotification("error")
		return nil, appErrors.DatabaseError("Failed to look up transaction").WithError(err)
	}

	order, err := s.orderRepo.GetOrderByGatewayReference(ctx, notification.PaymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordNotification("unknown_order")
			logger.Warn("Payment notification for unknown order")
			return nil, appErrors.BadRequestError("Unknown order reference").WithError(err)
		}
		metrics.RecordNotification("error")
		return nil, appErrors.DatabaseError("Failed to look up order").WithError(err)
	}

	if notification.AmountGross.Sub(order.TotalAmount).Abs().GreaterThan(amountTolerance) {
		metrics.RecordNotification("amount_mismatch")
		logger.Warn("Payment notification amount does not match order total",
			slog.String("event", "security"),
			slog.String("orderId", order.ID.String()),
			slog.String("amountGross", notification.AmountGross.StringFixed(2)),
			slog.String("orderTotal", order.TotalAmount.StringFixed(2)),
		)
		return nil, appErrors.BadRequestError("Notification amount does not match order total")
	}

	metadata, err := json.Marshal(fields)
	if err != nil {
		metrics.RecordNotification("error")
		return nil, appErrors.InternalError("Failed to encode notification payload").WithError(err)
	}

	txn := &models.Transaction{
		OrderID:              order.ID,
		GatewayTransactionID: notification.GatewayID,
		Status:               MapPaymentStatus(notification.PaymentStatus),
		Amount:               notification.AmountGross,
		PaymentMethod:        fields["payment_method"],
		Metadata:             metadata,
	}

	transitioned, err := s.txnRepo.RecordNotification(ctx, txn)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			s.markProcessed(ctx, notification.GatewayID)
			metrics.RecordNotification(string(models.NotificationDuplicate))
			logger.Info("Concurrent duplicate payment notification acknowledged")
			return &models.NotificationResult{Outcome: models.NotificationDuplicate, Order: order}, nil
		}
		metrics.RecordNotification("error")
		return nil, appErrors.DatabaseError("Failed to record payment notification").WithError(err)
	}

	s.markProcessed(ctx, notification.GatewayID)

	result := &models.NotificationResult{
		Outcome:      models.NotificationProcessed,
		Order:        order,
		Transaction:  txn,
		Transitioned: transitioned,
	}

	if !transitioned {
		if order.Status.IsTerminal() {
			result.Outcome = models.NotificationIgnored
			logger.Info("Order already settled, status left unchanged", slog.String("orderStatus", string(order.Status)))
		}
		metrics.RecordNotification(string(result.Outcome))
		return result, nil
	}

	order.Status = txn.Status.OrderStatus()
	order.GatewayTransactionID = &txn.GatewayTransactionID
	metrics.RecordNotification(string(result.Outcome))
	metrics.RecordOrderTransition(string(order.Status))
	logger.Info("Order status updated from payment notification",
		slog.String("orderId", order.ID.String()),
		slog.String("orderStatus", string(order.Status)),
	)

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.OrderKey(order.ID)); err != nil {
			logger.Warn("Failed to evict cached order", slog.String("error", err.Error()))
		}
	}

	if order.Status == models.OrderStatusCompleted && s.notifier != nil {
		// The payment is committed; email delivery must not fail the acknowledgement.
		if _, err := s.notifier.SendOrderConfirmation(ctx, order, notification.EmailAddress); err != nil {
			logger.Warn("Failed to send order confirmation", slog.String("error", err.Error()))
		}
	}

	return result, nil
}

func (s *paymentService) alreadyProcessed(ctx context.Context, gatewayID string) bool {
	if s.cache == nil {
		return false
	}

	found, err := s.cache.Exists(ctx, cache.NotificationKey(gatewayID))
	if err != nil {
		logging.FromContext(ctx).Warn("Notification marker lookup failed", slog.String("error", err.Error()))
		return false
	}

	return found
}

func (s *paymentService) markProcessed(ctx context.Context, gatewayID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, cache.NotificationKey(gatewayID), true, s.opts.MarkerTTL); err != nil {
		logging.FromContext(ctx).Warn("Failed to store notification marker", slog.String("error", err.Error()))
	}
}
