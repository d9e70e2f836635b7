package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type TransactionRepository interface {
	GetByGatewayTransactionID(ctx context.Context, gatewayTransactionID string) (*models.Transaction, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Transaction, error)
	// RecordNotification stores txn and advances its order out of pending in
	// one database transaction. It returns ErrDuplicateTransaction when the
	// gateway transaction id is already recorded, and reports whether the
	// order status changed.
	RecordNotification(ctx context.Context, txn *models.Transaction) (bool, error)
}

type transactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{DB: db}
}

const transactionColumns = `id, order_id, gateway_transaction_id, status, amount, payment_method, metadata, created_at`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	txn := &models.Transaction{}

	var metadata []byte

	err := row.Scan(&txn.ID, &txn.OrderID, &txn.GatewayTransactionID, &txn.Status, &txn.Amount, &txn.PaymentMethod, &metadata, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.Metadata = metadata

	return txn, nil
}

func (r *transactionRepository) GetByGatewayTransactionID(ctx context.Context, gatewayTransactionID string) (*models.Transaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE gateway_transaction_id = $1`

	txn, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, gatewayTransactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPQError("failed to get transaction", err)
	}

	return txn, nil
}

func (r *transactionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Transaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE order_id = $1 ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, mapPQError("failed to list transactions", err)
	}
	defer rows.Close()

	txns := []*models.Transaction{}

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return txns, nil
}

func (r *transactionRepository) RecordNotification(ctx context.Context, txn *models.Transaction) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}

	metadata := []byte(txn.Metadata)
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	var transitioned bool

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		insert := `
			INSERT INTO transactions (id, order_id, gateway_transaction_id, status, amount, payment_method, metadata, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (gateway_transaction_id) DO NOTHING
			RETURNING created_at
		`

		err := tx.QueryRowContext(dbCtx, insert, txn.ID, txn.OrderID, txn.GatewayTransactionID, txn.Status, txn.Amount, txn.PaymentMethod, metadata).Scan(&txn.CreatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// a concurrent delivery of the same notification won
				return ErrDuplicateTransaction
			}
			return mapPQError("failed to insert transaction", err)
		}

		// only a pending order moves; terminal orders keep their status
		update := `
			UPDATE orders SET status = $1, gateway_transaction_id = $2, updated_at = NOW()
			WHERE id = $3 AND status = 'pending'
		`

		result, err := tx.ExecContext(dbCtx, update, txn.Status.OrderStatus(), txn.GatewayTransactionID, txn.OrderID)
		if err != nil {
			return mapPQError("failed to update order status", err)
		}

		updatedRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		transitioned = updatedRows > 0 && txn.Status.OrderStatus() != models.OrderStatusPending

		return nil
	})

	if err != nil {
		return false, err
	}

	return transitioned, nil
}
