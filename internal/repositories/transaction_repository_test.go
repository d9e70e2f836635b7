package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionCols = []string{"id", "order_id", "gateway_transaction_id", "status", "amount", "payment_method", "metadata", "created_at"}

func newTestTransaction(status models.TransactionStatus) *models.Transaction {
	return &models.Transaction{
		OrderID:              uuid.New(),
		GatewayTransactionID: "1089250",
		Status:               status,
		Amount:               decimal.RequireFromString("344.99"),
		PaymentMethod:        "cc",
		Metadata:             json.RawMessage(`{"payment_status":"COMPLETE"}`),
	}
}

func TestTransactionRepository_GetByGatewayTransactionID(t *testing.T) {
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT .* FROM transactions WHERE gateway_transaction_id = \$1`).
			WithArgs("1089250").
			WillReturnRows(sqlmock.NewRows(transactionCols).
				AddRow(uuid.NewString(), orderID.String(), "1089250", "completed", "344.99", "cc", []byte(`{}`), now))

		txn, err := repo.GetByGatewayTransactionID(t.Context(), "1089250")

		require.NoError(t, err)
		assert.Equal(t, orderID, txn.OrderID)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		assert.JSONEq(t, `{}`, string(txn.Metadata))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)

		mock.ExpectQuery(`FROM transactions`).WillReturnError(sql.ErrNoRows)

		txn, err := repo.GetByGatewayTransactionID(t.Context(), "missing")

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTransactionRepository_ListByOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewTransactionRepository(db)
	orderID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM transactions WHERE order_id = \$1`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows(transactionCols).
			AddRow(uuid.NewString(), orderID.String(), "a", "pending", "10.00", "", []byte(`{}`), now).
			AddRow(uuid.NewString(), orderID.String(), "b", "completed", "10.00", "cc", []byte(`{}`), now))

	txns, err := repo.ListByOrder(t.Context(), orderID)

	require.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_RecordNotification(t *testing.T) {
	now := time.Now()

	t.Run("Success - Pending order completes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		txn := newTestTransaction(models.TransactionStatusCompleted)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO transactions .* ON CONFLICT \(gateway_transaction_id\) DO NOTHING RETURNING created_at`).
			WithArgs(sqlmock.AnyArg(), txn.OrderID, "1089250", txn.Status, txn.Amount, "cc", []byte(txn.Metadata)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(`UPDATE orders SET status = \$1, gateway_transaction_id = \$2, updated_at = NOW\(\) WHERE id = \$3 AND status = 'pending'`).
			WithArgs(models.OrderStatusCompleted, "1089250", txn.OrderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		transitioned, err := repo.RecordNotification(t.Context(), txn)

		require.NoError(t, err)
		assert.True(t, transitioned)
		assert.NotEqual(t, uuid.Nil, txn.ID)
		assert.Equal(t, now, txn.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Terminal order is left alone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		txn := newTestTransaction(models.TransactionStatusFailed)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO transactions`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(`UPDATE orders SET status`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		transitioned, err := repo.RecordNotification(t.Context(), txn)

		require.NoError(t, err)
		assert.False(t, transitioned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Pending status records but does not transition", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		txn := newTestTransaction(models.TransactionStatusPending)
		txn.Metadata = nil

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(sqlmock.AnyArg(), txn.OrderID, "1089250", txn.Status, txn.Amount, "cc", []byte(`{}`)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(`UPDATE orders SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		transitioned, err := repo.RecordNotification(t.Context(), txn)

		require.NoError(t, err)
		assert.False(t, transitioned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate - Conflict inserts nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		txn := newTestTransaction(models.TransactionStatusCompleted)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO transactions`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
		mock.ExpectRollback()

		transitioned, err := repo.RecordNotification(t.Context(), txn)

		assert.False(t, transitioned)
		assert.ErrorIs(t, err, repository.ErrDuplicateTransaction)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order update error rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)
		txn := newTestTransaction(models.TransactionStatusCompleted)
		dbErr := errors.New("connection reset by peer")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO transactions`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(`UPDATE orders`).WillReturnError(dbErr)
		mock.ExpectRollback()

		_, err := repo.RecordNotification(t.Context(), txn)

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewTransactionRepository(db)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := repo.RecordNotification(t.Context(), newTestTransaction(models.TransactionStatusCompleted))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})
}
