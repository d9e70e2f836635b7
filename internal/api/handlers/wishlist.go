package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: validator.New()}
}

// GetWishlist godoc
//
//	@Summary	List wishlist entries
//	@Tags		Wishlist
//	@Produce	json
//	@Param		sessionId	query		string	false	"Guest session id, ignored when a bearer token is present"
//	@Success	200			{object}	models.WishlistResponse
//	@Failure	400			{object}	response.ErrorResponse	"Neither a session id nor a bearer token"
//	@Failure	500			{object}	response.ErrorResponse	"Internal server error"
//	@Router		/wishlist [get]
func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := resolveIdentity(r, "")

		wishlist, err := h.wishlistService.ListItems(r.Context(), owner)
		if err != nil {
			logging.FromContext(r.Context()).Error("Failed to list wishlist", slog.String("owner", owner.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, wishlist)
	}
}

// AddItem godoc
//
//	@Summary	Save a product to the wishlist
//	@Tags		Wishlist
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.AddWishlistItemRequest	true	"Product snapshot"
//	@Success	200		{object}	models.WishlistItem
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	500		{object}	response.ErrorResponse	"Wishlist store unavailable"
//	@Router		/wishlist [post]
func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		var req models.AddWishlistItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid wishlist input")
			return
		}

		owner := resolveIdentity(r, req.SessionID)

		item, err := h.wishlistService.AddItem(r.Context(), owner, &req)
		if err != nil {
			logger.Error("Failed to add wishlist item", slog.String("owner", owner.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Wishlist item saved", slog.String("productId", item.ProductID))
		response.WriteJson(w, http.StatusOK, item)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a product from the wishlist
//	@Tags		Wishlist
//	@Produce	json
//	@Param		productId	path		string	true	"Product id"
//	@Param		sessionId	query		string	false	"Guest session id"
//	@Success	200			{object}	models.SuccessResponse
//	@Failure	400			{object}	response.ErrorResponse	"Missing product id"
//	@Failure	500			{object}	response.ErrorResponse	"Internal server error"
//	@Router		/wishlist/{productId} [delete]
func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := strings.TrimSpace(r.PathValue("productId"))
		if productID == "" {
			response.Error(w, errors.BadRequestError("Missing productId"))
			return
		}

		owner := resolveIdentity(r, "")

		if err := h.wishlistService.RemoveItem(r.Context(), owner, productID); err != nil {
			logging.FromContext(r.Context()).Error("Failed to remove wishlist item", slog.String("owner", owner.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}
