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

type CartRepository interface {
	AddItem(ctx context.Context, owner models.Identity, product models.ProductSnapshot, quantity int) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, owner models.Identity, lineID uuid.UUID, quantity int) (*models.CartLine, error)
	RemoveItem(ctx context.Context, owner models.Identity, lineID uuid.UUID) error
	Clear(ctx context.Context, owner models.Identity) error
	ListItems(ctx context.Context, owner models.Identity) ([]models.CartLine, error)
	MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) (int, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartLineColumns = `id, user_id, session_id, product_id, product_name, product_details, product_image, price, quantity, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCartLine(row rowScanner) (*models.CartLine, error) {
	line := &models.CartLine{}

	err := row.Scan(&line.ID, &line.UserID, &line.SessionID, &line.ProductID, &line.ProductName,
		&line.ProductDetails, &line.ProductImage, &line.Price, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return line, nil
}

// AddItem inserts a line or, when the owner already has the product, adds
// quantity to the existing line.
func (r *cartRepository) AddItem(ctx context.Context, owner models.Identity, product models.ProductSnapshot, quantity int) (*models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	userID, sessionID, err := ownerColumns(owner)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cart_items (id, user_id, session_id, product_id, product_name, product_details, product_image, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (owner_key, product_id) DO UPDATE
		SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, 1000), updated_at = NOW()
		RETURNING ` + cartLineColumns

	line, err := scanCartLine(r.DB.QueryRowContext(dbCtx, query, uuid.New(), userID, sessionID,
		product.ProductID, product.ProductName, product.ProductDetails, product.ProductImage, product.Price, quantity))
	if err != nil {
		return nil, mapPQError("failed to add cart item", err)
	}

	return line, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, owner models.Identity, lineID uuid.UUID, quantity int) (*models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 3)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE cart_items SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND ` + filter + `
		RETURNING ` + cartLineColumns

	line, err := scanCartLine(r.DB.QueryRowContext(dbCtx, query, quantity, lineID, ownerArg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPQError("failed to update cart item", err)
	}

	return line, nil
}

// RemoveItem is idempotent: removing a line that does not exist succeeds.
func (r *cartRepository) RemoveItem(ctx context.Context, owner models.Identity, lineID uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 2)
	if err != nil {
		return err
	}

	query := `DELETE FROM cart_items WHERE id = $1 AND ` + filter

	if _, err := r.DB.ExecContext(dbCtx, query, lineID, ownerArg); err != nil {
		return mapPQError("failed to remove cart item", err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, owner models.Identity) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 1)
	if err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE `+filter, ownerArg); err != nil {
		return mapPQError("failed to clear cart", err)
	}

	return nil
}

// ListItems returns the owner's lines oldest first. The slice is never nil.
func (r *cartRepository) ListItems(ctx context.Context, owner models.Identity) ([]models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, ownerArg, err := ownerFilter(owner, 1)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + cartLineColumns + `
		FROM cart_items
		WHERE ` + filter + `
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, ownerArg)
	if err != nil {
		return nil, mapPQError("failed to list cart items", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		line, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		lines = append(lines, *line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over cart items: %w", err)
	}

	return lines, nil
}

// MergeGuestCart moves every line of a guest session into the user's cart,
// summing quantities for products both carts hold. Returns the number of
// guest lines merged.
func (r *cartRepository) MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var merged int

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		upsert := `
			INSERT INTO cart_items (id, user_id, session_id, product_id, product_name, product_details, product_image, price, quantity, created_at, updated_at)
			SELECT gen_random_uuid(), $1, NULL, product_id, product_name, product_details, product_image, price, quantity, created_at, NOW()
			FROM cart_items
			WHERE session_id = $2
			ON CONFLICT (owner_key, product_id) DO UPDATE
			SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, 1000), updated_at = NOW()`

		if _, err := tx.ExecContext(dbCtx, upsert, userID, sessionID); err != nil {
			return mapPQError("failed to merge guest cart", err)
		}

		result, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
		if err != nil {
			return mapPQError("failed to delete guest cart", err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get deleted rows: %w", err)
		}

		merged = int(n)

		return nil
	})

	if err != nil {
		return 0, err
	}

	return merged, nil
}
