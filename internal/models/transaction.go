package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction records one gateway notification. GatewayTransactionID is unique
// and is the idempotency key for notification handling.
type Transaction struct {
	ID                   uuid.UUID         `json:"id"`
	OrderID              uuid.UUID         `json:"orderId"`
	GatewayTransactionID string            `json:"gatewayTransactionId"`
	Status               TransactionStatus `json:"status"`
	Amount               decimal.Decimal   `json:"amount"`
	PaymentMethod        string            `json:"paymentMethod"`
	Metadata             json.RawMessage   `json:"metadata,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
}

// OrderStatus is the order status a transaction status moves the order to.
func (s TransactionStatus) OrderStatus() OrderStatus {
	return OrderStatus(s)
}

type CheckoutRequest struct {
	CartItems []CartLine `json:"cartItems"`
	Subtotal  int64      `json:"subtotal"`
	Vat       int64      `json:"vat"`
	Total     int64      `json:"total"`
}

type CheckoutResponse struct {
	Success       bool              `json:"success"`
	OrderID       uuid.UUID         `json:"orderId"`
	PaymentURL    string            `json:"paymentUrl"`
	PaymentFields map[string]string `json:"paymentFields"`
}

// NotificationOutcome describes what happened to an inbound notification.
type NotificationOutcome string

const (
	NotificationProcessed NotificationOutcome = "processed"
	NotificationDuplicate NotificationOutcome = "duplicate"
	NotificationIgnored   NotificationOutcome = "ignored"
)

type NotificationResult struct {
	Outcome     NotificationOutcome
	Order       *Order
	Transaction *Transaction
	// Transitioned is true when this notification moved the order out of pending.
	Transitioned bool
}
