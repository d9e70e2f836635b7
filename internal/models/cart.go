package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product in a cart. Exactly one of UserID or SessionID is set.
// Price is the unit price in minor currency units (cents).
type CartLine struct {
	ID             uuid.UUID  `json:"id"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	SessionID      *string    `json:"sessionId,omitempty"`
	ProductID      string     `json:"productId"`
	ProductName    string     `json:"productName"`
	ProductDetails string     `json:"productDetails,omitempty"`
	ProductImage   string     `json:"productImage,omitempty"`
	Price          int64      `json:"price"`
	Quantity       int        `json:"quantity"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Input bounds. One line at both limits fits the NUMERIC(12,2) order total;
// checkout rejects carts whose grand total does not.
const (
	MaxUnitPrice    int64 = 100_000_000 // 1,000,000.00
	MaxLineQuantity       = 1000
)

// ProductSnapshot is the denormalised product data stored on a cart line.
type ProductSnapshot struct {
	ProductID      string
	ProductName    string
	ProductDetails string
	ProductImage   string
	Price          int64
}

type AddItemRequest struct {
	ProductID      string `json:"productId" validate:"required,max=100"`
	ProductName    string `json:"productName" validate:"required,max=255"`
	ProductDetails string `json:"productDetails" validate:"omitempty,max=1000"`
	ProductImage   string `json:"productImage" validate:"omitempty,max=2048"`
	Price          int64  `json:"price" validate:"gte=0,max=100000000"`
	Quantity       int    `json:"quantity" validate:"omitempty,min=1,max=1000"`
	SessionID      string `json:"sessionId" validate:"omitempty,max=255"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=1000"`
}

type MergeCartRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
}

// CartTotals are derived on read and never persisted.
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type CartItemsResponse struct {
	Items  []CartLine  `json:"items"`
	Totals *CartTotals `json:"totals,omitempty"`
}

type CartItemResponse struct {
	Item *CartLine `json:"item"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
