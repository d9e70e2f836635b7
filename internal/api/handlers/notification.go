package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	orderService        service.OrderService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService, orderService service.OrderService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		orderService:        orderService,
		validator:           validator.New(),
	}
}

// SendEmail godoc
//
//	@Summary	Send an ad-hoc email (admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		email	body		models.EmailNotificationRequest	true	"Email to send"
//	@Success	201		{object}	models.NotificationResponse
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	500		{object}	response.ErrorResponse	"Email could not be sent"
//	@Security	BearerAuth
//	@Router		/admin/notifications/email [post]
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid notification input")
			return
		}

		notification, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email notification", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Notification sent", slog.String("notificationId", notification.ID.String()))
		response.Success(w, http.StatusCreated, notification)
	}
}

// ResendOrderConfirmation godoc
//
//	@Summary		Resend an order confirmation (admin)
//	@Description	Emails the order confirmation again to the account address of the order's owner.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success		201	{object}	models.NotificationResponse
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID or order not completed"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Email could not be sent"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/confirmation [post]
func (h *NotificationHandler) ResendOrderConfirmation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id.String()))

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to load order for confirmation", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if order.Status != models.OrderStatusCompleted {
			response.Error(w, errors.BadRequestError("Only completed orders have a confirmation"))
			return
		}

		notification, err := h.notificationService.SendOrderConfirmation(r.Context(), order, "")
		if err != nil {
			logger.Error("Failed to resend order confirmation", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order confirmation resent", slog.String("notificationId", notification.ID.String()))
		response.Success(w, http.StatusCreated, notification)
	}
}
