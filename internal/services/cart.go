package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRateBasisPoints is 15%.
const DefaultTaxRateBasisPoints int64 = 1500

type CartService interface {
	ListItems(ctx context.Context, owner models.Identity) (*models.CartItemsResponse, error)
	AddItem(ctx context.Context, owner models.Identity, req *models.AddItemRequest) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, owner models.Identity, lineID uuid.UUID, quantity int) (*models.CartLine, error)
	RemoveItem(ctx context.Context, owner models.Identity, lineID uuid.UUID) error
	Clear(ctx context.Context, owner models.Identity) error
	MergeGuestCart(ctx context.Context, userID uuid.UUID, sessionID string) (*models.CartItemsResponse, error)
}

type cartService struct {
	repo       repository.CartRepository
	taxRateBPS int64
}

func NewCartService(repo repository.CartRepository, taxRateBPS int64) CartService {
	if taxRateBPS <= 0 {
		taxRateBPS = DefaultTaxRateBasisPoints
	}
	return &cartService{repo: repo, taxRateBPS: taxRateBPS}
}

var basisPointsPerUnit = decimal.NewFromInt(10000)

// ComputeTotals derives subtotal, tax and grand total in minor units. Tax is
// rounded half-up to the nearest minor unit.
func ComputeTotals(items []models.CartLine, taxRateBPS int64) models.CartTotals {

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	tax := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(taxRateBPS)).
		Div(basisPointsPerUnit).
		Round(0).
		IntPart()

	return models.CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// ListItems implements CartService.
func (s *cartService) ListItems(ctx context.Context, owner models.Identity) (*models.CartItemsResponse, error) {

	if owner.IsZero() {
		return nil, appErrors.BadRequestError("A session id or bearer token is required")
	}

	items, err := s.repo.ListItems(ctx, owner)
	if err != nil {
		// A store without the cart table reads as an empty cart.
		if errors.Is(err, repository.ErrTableMissing) {
			return &models.CartItemsResponse{Items: []models.CartLine{}}, nil
		}
		return nil, appErrors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	totals := ComputeTotals(items, s.taxRateBPS)

	return &models.CartItemsResponse{Items: items, Totals: &totals}, nil
}

// AddItem implements CartService.
func (s *cartService) AddItem(ctx context.Context, owner models.Identity, req *models.AddItemRequest) (*models.CartLine, error) {

	if owner.IsZero() {
		return nil, appErrors.BadRequestError("A session id or bearer token is required")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product := models.ProductSnapshot{
		ProductID:      req.ProductID,
		ProductName:    utils.SanitizeText(req.ProductName),
		ProductDetails: utils.SanitizeText(req.ProductDetails),
		ProductImage:   req.ProductImage,
		Price:          req.Price,
	}

	if product.ProductName == "" {
		return nil, appErrors.ValidationError("Product name is empty after sanitising")
	}

	line, err := s.repo.AddItem(ctx, owner, product, quantity)
	if err != nil {
		return nil, writeError("Failed to add item to cart", err)
	}

	return line, nil
}

// UpdateQuantity implements CartService. A quantity below one removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, owner models.Identity, lineID uuid.UUID, quantity int) (*models.CartLine, error) {

	if owner.IsZero() {
		return nil, appErrors.BadRequestError("A session id or bearer token is required")
	}

	if quantity < 1 {
		return nil, s.RemoveItem(ctx, owner, lineID)
	}

	line, err := s.repo.UpdateQuantity(ctx, owner, lineID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart item not found").WithError(err)
		}
		return nil, writeError("Failed to update cart item", err)
	}

	return line, nil
}

// RemoveItem implements CartService. Removing an absent line succeeds.
func (s *cartService) RemoveItem(ctx context.Context, owner models.Identity, lineID uuid.UUID) error {

	if owner.IsZero() {
		return appErrors.BadRequestError("A session id or bearer token is required")
	}

	if err := s.repo.RemoveItem(ctx, owner, lineID); err != nil {
		return writeError("Failed to remove cart item", err)
	}

	return nil
}

// Clear implements CartService.
func (s *cartService) Clear(ctx context.Context, owner models.Identity) error {

	if owner.IsZero() {
		return appErrors.BadRequestError("A session id or bearer token is required")
	}

	if err := s.repo.Clear(ctx, owner); err != nil {
		return writeError("Failed to clear cart", err)
	}

	return nil
}

// MergeGuestCart implements CartService. It moves every guest line into the
// user's cart and returns the merged cart.
func (s *cartService) MergeGuestCart(ctx context.Context, userID uuid.UUID, sessionID string) (*models.CartItemsResponse, error) {

	if userID == uuid.Nil {
		return nil, appErrors.UnauthorizedError("Authentication required")
	}

	if sessionID == "" {
		return nil, appErrors.ValidationError("Session id is required")
	}

	if _, err := s.repo.MergeGuestCart(ctx, sessionID, userID); err != nil {
		return nil, writeError("Failed to merge guest cart", err)
	}

	return s.ListItems(ctx, models.UserIdentity(userID))
}

func writeError(message string, err error) error {
	if errors.Is(err, repository.ErrTableMissing) {
		return appErrors.StoreUnavailableError("Cart store is unavailable").WithError(err)
	}
	return appErrors.DatabaseError(message).WithError(err)
}
