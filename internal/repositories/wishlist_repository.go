package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type WishlistRepository interface {
	AddItem(ctx context.Context, owner models.Identity, item *models.WishlistItem) (*models.WishlistItem, error)
	RemoveItem(ctx context.Context, owner models.Identity, productID string) error
	ListItems(ctx context.Context, owner models.Identity) ([]models.WishlistItem, error)
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

const wishlistColumns = `id, user_id, session_id, product_id, product_name, product_image, price, created_at`

func scanWishlistItem(row rowScanner) (*models.WishlistItem, error) {
	item := &models.WishlistItem{}

	err := row.Scan(&item.ID, &item.UserID, &item.SessionID, &item.ProductID, &item.ProductName, &item.ProductImage, &item.Price, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// AddItem is idempotent: adding a product already on the list returns the
// existing entry.
func (r *wishlistRepository) AddItem(ctx context.Context, owner models.Identity, item *models.WishlistItem) (*models.WishlistItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	userID, sessionID, err := ownerColumns(owner)
	if err != nil {
		return nil, err
	}

	// the no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO wishlist_items (id, user_id, session_id, product_id, product_name, product_image, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (owner_key, product_id) DO UPDATE SET product_id = EXCLUDED.product_id
		RETURNING ` + wishlistColumns

	saved, err := scanWishlistItem(r.DB.QueryRowContext(dbCtx, query, uuid.New(), userID, sessionID,
		item.ProductID, item.ProductName, item.ProductImage, item.Price))
	if err != nil {
		return nil, mapPQError("failed to add wishlist item", err)
	}

	return saved, nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, owner models.Identity, productID string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 2)
	if err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM wishlist_items WHERE product_id = $1 AND `+filter, productID, ownerArg); err != nil {
		return mapPQError("failed to remove wishlist item", err)
	}

	return nil
}

func (r *wishlistRepository) ListItems(ctx context.Context, owner models.Identity) ([]models.WishlistItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 1)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items WHERE ` + filter + ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, ownerArg)
	if err != nil {
		return nil, mapPQError("failed to list wishlist items", err)
	}
	defer rows.Close()

	items := []models.WishlistItem{}

	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over wishlist items: %w", err)
	}

	return items, nil
}
