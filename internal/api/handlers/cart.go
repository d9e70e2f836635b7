package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//
//	@Summary		List cart lines
//	@Description	Lists the cart of the bearer token's user, or of the guest named by sessionId. Totals are in minor units.
//	@Tags			Cart
//	@Produce		json
//	@Param			sessionId	query		string						false	"Guest session id, ignored when a bearer token is present"
//	@Success		200			{object}	models.CartItemsResponse	"Cart lines and totals"
//	@Failure		400			{object}	response.ErrorResponse		"Neither a session id nor a bearer token"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := resolveIdentity(r, "")
		logger := logging.FromContext(r.Context()).With(slog.String("owner", owner.String()))

		cart, err := h.cartService.ListItems(r.Context(), owner)
		if err != nil {
			logger.Error("Failed to list cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Cart listed", slog.Int("lines", len(cart.Items)))
		response.WriteJson(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary		Add a product to the cart
//	@Description	Adds a product snapshot to the cart. Adding a product already in the cart increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest		true	"Product snapshot"
//	@Success		200		{object}	models.CartItemResponse		"Resulting cart line"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		500		{object}	response.ErrorResponse		"Cart store unavailable"
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		owner := resolveIdentity(r, req.SessionID)
		logger = logger.With(slog.String("owner", owner.String()), slog.String("productId", req.ProductID))

		line, err := h.cartService.AddItem(r.Context(), owner, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("quantity", line.Quantity))
		response.WriteJson(w, http.StatusOK, models.CartItemResponse{Item: line})
	}
}

// UpdateItem godoc
//
//	@Summary		Set the quantity of a cart line
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Cart line ID (UUID)"	Format(uuid)
//	@Param			sessionId	query		string							false	"Guest session id"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity, at least 1"
//	@Success		200			{object}	models.CartItemResponse			"Updated cart line"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid id or quantity"
//	@Failure		404			{object}	response.ErrorResponse			"Line not in this cart"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Router			/cart/{id} [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity", slog.String("lineId", id.String()))
			return
		}

		owner := resolveIdentity(r, "")
		logger = logger.With(slog.String("owner", owner.String()), slog.String("lineId", id.String()))

		line, err := h.cartService.UpdateQuantity(r.Context(), owner, id, req.Quantity)
		if err != nil {
			logger.Error("Failed to update cart line", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart line updated", slog.Int("quantity", req.Quantity))
		response.WriteJson(w, http.StatusOK, models.CartItemResponse{Item: line})
	}
}

// RemoveItem godoc
//
//	@Summary		Remove a cart line
//	@Description	Removing a line that is not in the cart succeeds.
//	@Tags			Cart
//	@Produce		json
//	@Param			id			path		string					true	"Cart line ID (UUID)"	Format(uuid)
//	@Param			sessionId	query		string					false	"Guest session id"
//	@Success		200			{object}	models.SuccessResponse
//	@Failure		400			{object}	response.ErrorResponse	"Invalid id"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		owner := resolveIdentity(r, "")

		if err := h.cartService.RemoveItem(r.Context(), owner, id); err != nil {
			logger.Error("Failed to remove cart line", slog.String("owner", owner.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Produce	json
//	@Param		sessionId	query		string	false	"Guest session id"
//	@Success	200			{object}	models.SuccessResponse
//	@Failure	400			{object}	response.ErrorResponse	"Neither a session id nor a bearer token"
//	@Failure	500			{object}	response.ErrorResponse	"Internal server error"
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := resolveIdentity(r, "")
		logger := logging.FromContext(r.Context()).With(slog.String("owner", owner.String()))

		if err := h.cartService.Clear(r.Context(), owner); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.WriteJson(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

// MergeCart godoc
//
//	@Summary		Merge a guest cart into the signed-in user's cart
//	@Description	Moves every line of the guest session into the user's cart, summing quantities of shared products.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			merge	body		models.MergeCartRequest		true	"Guest session to merge"
//	@Success		200		{object}	models.CartItemsResponse	"The user's cart after merging"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/merge [post]
func (h *CartHandler) MergeCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart merge attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.MergeCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart merge input")
			return
		}

		cart, err := h.cartService.MergeGuestCart(r.Context(), claims.UserID, req.SessionID)
		if err != nil {
			logger.Error("Failed to merge guest cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Guest cart merged", slog.Int("lines", len(cart.Items)))
		response.WriteJson(w, http.StatusOK, cart)
	}
}
