package models

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItem struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	SessionID    *string    `json:"sessionId,omitempty"`
	ProductID    string     `json:"productId"`
	ProductName  string     `json:"productName"`
	ProductImage string     `json:"productImage,omitempty"`
	Price        int64      `json:"price"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type AddWishlistItemRequest struct {
	ProductID    string `json:"productId" validate:"required,max=100"`
	ProductName  string `json:"productName" validate:"required,max=255"`
	ProductImage string `json:"productImage" validate:"omitempty,max=2048"`
	Price        int64  `json:"price" validate:"gte=0"`
	SessionID    string `json:"sessionId" validate:"omitempty,max=255"`
}

type WishlistResponse struct {
	Items []WishlistItem `json:"items"`
}
