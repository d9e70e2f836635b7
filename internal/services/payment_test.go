package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cacheMocks "github.com/aaravmahajanofficial/storefront/internal/cache/mocks"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	payfastMocks "github.com/aaravmahajanofficial/storefront/pkg/payfast/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const markerTTL = 72 * time.Hour

type paymentFixture struct {
	orderRepo *repoMocks.OrderRepository
	txnRepo   *repoMocks.TransactionRepository
	gateway   *payfastMocks.Client
	cache     *cacheMocks.Cache
	notifier  *serviceMocks.NotificationService
	service   service.PaymentService
}

func newPaymentFixture(validate bool) *paymentFixture {
	f := &paymentFixture{
		orderRepo: new(repoMocks.OrderRepository),
		txnRepo:   new(repoMocks.TransactionRepository),
		gateway:   new(payfastMocks.Client),
		cache:     new(cacheMocks.Cache),
		notifier:  new(serviceMocks.NotificationService),
	}
	f.service = service.NewPaymentService(f.orderRepo, f.txnRepo, f.gateway, f.cache, f.notifier,
		service.PaymentOptions{ValidateWithGateway: validate, MarkerTTL: markerTTL})
	return f
}

func (f *paymentFixture) assertExpectations(t *testing.T) {
	f.orderRepo.AssertExpectations(t)
	f.txnRepo.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func notificationFields(reference, gatewayID, status, amount string) map[string]string {
	return map[string]string{
		payfast.FieldPaymentID:     reference,
		payfast.FieldGatewayID:     gatewayID,
		payfast.FieldPaymentStatus: status,
		payfast.FieldAmountGross:   amount,
		payfast.FieldAmountFee:     "-7.94",
		payfast.FieldAmountNet:     "337.05",
		payfast.FieldEmailAddress:  "buyer@example.com",
		"custom_str1":              "order",
		"signature":                "0123456789abcdef0123456789abcdef",
	}
}

func pendingOrder(total string) *models.Order {
	reference := "ref-1"
	return &models.Order{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		TotalAmount:    decimal.RequireFromString(total),
		Status:         models.OrderStatusPending,
		GatewayOrderID: &reference,
	}
}

func TestMapPaymentStatus(t *testing.T) {
	tests := []struct {
		status string
		want   models.TransactionStatus
	}{
		{status: "COMPLETE", want: models.TransactionStatusCompleted},
		{status: "FAILED", want: models.TransactionStatusFailed},
		{status: "CANCELLED", want: models.TransactionStatusCancelled},
		{status: "PENDING", want: models.TransactionStatusPending},
		{status: "REFUNDED", want: models.TransactionStatusPending},
		{status: "", want: models.TransactionStatusPending},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, service.MapPaymentStatus(tc.status))
		})
	}
}

func TestPaymentService_HandleNotification(t *testing.T) {
	ctx := context.Background()
	markerKey := "storefront:itn:pf-1001"

	t.Run("Success - Completed payment transitions the order", func(t *testing.T) {
		// Arrange
		f := newPaymentFixture(false)
		order := pendingOrder("344.99")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "344.99")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.MatchedBy(func(txn *models.Transaction) bool {
			return txn.OrderID == order.ID &&
				txn.GatewayTransactionID == "pf-1001" &&
				txn.Status == models.TransactionStatusCompleted &&
				txn.Amount.Equal(decimal.RequireFromString("344.99")) &&
				len(txn.Metadata) > 0
		})).Return(true, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()
		f.cache.On("Delete", ctx, "storefront:order:"+order.ID.String()).Return(nil).Once()
		f.notifier.On("SendOrderConfirmation", ctx, order, "buyer@example.com").Return(&models.NotificationResponse{}, nil).Once()

		// Act
		result, err := f.service.HandleNotification(ctx, fields)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.NotificationProcessed, result.Outcome)
		assert.True(t, result.Transitioned)
		assert.Equal(t, models.OrderStatusCompleted, result.Order.Status)
		require.NotNil(t, result.Order.GatewayTransactionID)
		assert.Equal(t, "pf-1001", *result.Order.GatewayTransactionID)
		f.assertExpectations(t)
	})

	t.Run("Success - Failed payment sends no confirmation", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "FAILED", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(true, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()
		f.cache.On("Delete", ctx, "storefront:order:"+order.ID.String()).Return(nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusFailed, result.Order.Status)
		f.notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Success - Settled order is acknowledged without change", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		order.Status = models.OrderStatusCancelled
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(false, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationIgnored, result.Outcome)
		assert.False(t, result.Transitioned)
		assert.Equal(t, models.OrderStatusCancelled, result.Order.Status)
		f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Success - Pending status records without transition", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "PENDING", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(false, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationProcessed, result.Outcome)
		assert.Equal(t, models.OrderStatusPending, result.Order.Status)
		f.assertExpectations(t)
	})

	t.Run("Duplicate - Marker found in cache", func(t *testing.T) {
		f := newPaymentFixture(false)
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(true, nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationDuplicate, result.Outcome)
		f.txnRepo.AssertNotCalled(t, "GetByGatewayTransactionID", mock.Anything, mock.Anything)
		f.txnRepo.AssertNotCalled(t, "RecordNotification", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Duplicate - Transaction found in database", func(t *testing.T) {
		f := newPaymentFixture(false)
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")
		existing := &models.Transaction{ID: uuid.New(), GatewayTransactionID: "pf-1001"}

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(existing, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationDuplicate, result.Outcome)
		assert.Equal(t, existing, result.Transaction)
		f.orderRepo.AssertNotCalled(t, "GetOrderByGatewayReference", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Duplicate - Concurrent insert lost the race", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(false, repository.ErrDuplicateTransaction).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationDuplicate, result.Outcome)
		f.notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Failure - Signature mismatch", func(t *testing.T) {
		f := newPaymentFixture(false)
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(false).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeSignatureInvalid)
		f.cache.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Failure - Required field missing", func(t *testing.T) {
		f := newPaymentFixture(false)
		fields := notificationFields("ref-1", "", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		assert.ErrorIs(t, err, payfast.ErrMissingField)
		f.assertExpectations(t)
	})

	t.Run("Failure - Unknown order reference", func(t *testing.T) {
		f := newPaymentFixture(false)
		fields := notificationFields("ref-404", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-404").Return(nil, repository.ErrNotFound).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeBadRequest)
		f.assertExpectations(t)
	})

	t.Run("Failure - Tampered amount records nothing", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("344.99")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "1.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeBadRequest)
		f.txnRepo.AssertNotCalled(t, "RecordNotification", mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Failure - Database error asks the gateway to retry", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(false, errors.New("connection refused")).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Confirmation failure does not fail the notification", func(t *testing.T) {
		f := newPaymentFixture(false)
		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.cache.On("Exists", ctx, markerKey).Return(false, nil).Once()
		f.txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		f.orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		f.txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(true, nil).Once()
		f.cache.On("Set", ctx, markerKey, true, markerTTL).Return(nil).Once()
		f.cache.On("Delete", ctx, "storefront:order:"+order.ID.String()).Return(errors.New("redis down")).Once()
		f.notifier.On("SendOrderConfirmation", ctx, order, "buyer@example.com").Return(nil, errors.New("sendgrid 500")).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.True(t, result.Transitioned)
		f.assertExpectations(t)
	})

	t.Run("Gateway validation rejects the notification", func(t *testing.T) {
		f := newPaymentFixture(true)
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.gateway.On("ValidateNotification", ctx, fields).Return(payfast.ErrNotValid).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeBadRequest)
		f.assertExpectations(t)
	})

	t.Run("Gateway validation unreachable", func(t *testing.T) {
		f := newPaymentFixture(true)
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		f.gateway.On("VerifySignature", fields).Return(true).Once()
		f.gateway.On("ValidateNotification", ctx, fields).Return(errors.New("dial tcp: timeout")).Once()

		result, err := f.service.HandleNotification(ctx, fields)

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
		f.assertExpectations(t)
	})

	t.Run("Works without cache and notifier", func(t *testing.T) {
		orderRepo := new(repoMocks.OrderRepository)
		txnRepo := new(repoMocks.TransactionRepository)
		gateway := new(payfastMocks.Client)
		paymentService := service.NewPaymentService(orderRepo, txnRepo, gateway, nil, nil, service.PaymentOptions{})

		order := pendingOrder("100.00")
		fields := notificationFields("ref-1", "pf-1001", "COMPLETE", "100.00")

		gateway.On("VerifySignature", fields).Return(true).Once()
		txnRepo.On("GetByGatewayTransactionID", ctx, "pf-1001").Return(nil, repository.ErrNotFound).Once()
		orderRepo.On("GetOrderByGatewayReference", ctx, "ref-1").Return(order, nil).Once()
		txnRepo.On("RecordNotification", ctx, mock.AnythingOfType("*models.Transaction")).Return(true, nil).Once()

		result, err := paymentService.HandleNotification(ctx, fields)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, result.Order.Status)
		orderRepo.AssertExpectations(t)
		txnRepo.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})
}
