package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves the back-office routes. Every route is mounted behind
// middleware.RequireAdmin.
type AdminHandler struct {
	orderService service.OrderService
	userService  service.UserService
	validator    *validator.Validate
}

func NewAdminHandler(orderService service.OrderService, userService service.UserService) *AdminHandler {
	return &AdminHandler{orderService: orderService, userService: userService, validator: validator.New()}
}

// ListOrders godoc
//
//	@Summary	List every order (admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		page		query		int							false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int							false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.OrderListResponse
//	@Failure	401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure	403			{object}	response.ErrorResponse	"Admin access required"
//	@Failure	500			{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/admin/orders [get]
func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)

		orders, err := h.orderService.ListAllOrders(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list all orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListUsers godoc
//
//	@Summary	List users (admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		page		query		int	false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int	false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.User}
//	@Failure	401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure	403			{object}	response.ErrorResponse	"Admin access required"
//	@Failure	500			{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/admin/users [get]
func (h *AdminHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)

		users, err := h.userService.ListUsers(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Override an order's status (admin)
//	@Description	Moves an order to a terminal status. An order can never be moved back to pending.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New order status"
//	@Success		200		{object}	models.Order					"Successfully updated order status"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid order ID format or status value"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Admin access required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id.String()))

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		logger = logger.With(slog.String("newStatus", string(req.Status)))

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status overridden by admin")
		response.Success(w, http.StatusOK, order)
	}
}
