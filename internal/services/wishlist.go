package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type WishlistService interface {
	ListItems(ctx context.Context, owner models.Identity) (*models.WishlistResponse, error)
	AddItem(ctx context.Context, owner models.Identity, req *models.AddWishlistItemRequest) (*models.WishlistItem, error)
	RemoveItem(ctx context.Context, owner models.Identity, productID string) error
}

type wishlistService struct {
	repo repository.WishlistRepository
}

func NewWishlistService(repo repository.WishlistRepository) WishlistService {
	return &wishlistService{repo: repo}
}

// ListItems implements WishlistService.
func (s *wishlistService) ListItems(ctx context.Context, owner models.Identity) (*models.WishlistResponse, error) {

	if owner.IsZero() {
		return nil, appErrors.BadRequestError("A session id or bearer token is required")
	}

	items, err := s.repo.ListItems(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			return &models.WishlistResponse{Items: []models.WishlistItem{}}, nil
		}
		return nil, appErrors.DatabaseError("Failed to retrieve wishlist").WithError(err)
	}

	return &models.WishlistResponse{Items: items}, nil
}

// AddItem implements WishlistService. Adding a product twice keeps one entry.
func (s *wishlistService) AddItem(ctx context.Context, owner models.Identity, req *models.AddWishlistItemRequest) (*models.WishlistItem, error) {

	if owner.IsZero() {
		return nil, appErrors.BadRequestError("A session id or bearer token is required")
	}

	item := &models.WishlistItem{
		ProductID:    req.ProductID,
		ProductName:  utils.SanitizeText(req.ProductName),
		ProductImage: req.ProductImage,
		Price:        req.Price,
	}

	if item.ProductName == "" {
		return nil, appErrors.ValidationError("Product name is empty after sanitising")
	}

	saved, err := s.repo.AddItem(ctx, owner, item)
	if err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			return nil, appErrors.StoreUnavailableError("Wishlist store is unavailable").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to add item to wishlist").WithError(err)
	}

	return saved, nil
}

// RemoveItem implements WishlistService.
func (s *wishlistService) RemoveItem(ctx context.Context, owner models.Identity, productID string) error {

	if owner.IsZero() {
		return appErrors.BadRequestError("A session id or bearer token is required")
	}

	if err := s.repo.RemoveItem(ctx, owner, productID); err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			return appErrors.StoreUnavailableError("Wishlist store is unavailable").WithError(err)
		}
		return appErrors.DatabaseError("Failed to remove item from wishlist").WithError(err)
	}

	return nil
}
