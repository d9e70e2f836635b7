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
	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	"github.com/go-playground/validator/v10"
)

const maxNotificationBytes = 64 << 10

type PaymentHandler struct {
	checkoutService service.CheckoutService
	paymentService  service.PaymentService
	validator       *validator.Validate
}

func NewPaymentHandler(checkoutService service.CheckoutService, paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService, paymentService: paymentService, validator: validator.New()}
}

// Process godoc
//
//	@Summary		Start checkout
//	@Description	Turns the signed-in user's cart into a pending order and returns the signed gateway form. The cart is re-read server side; client totals are advisory.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest		true	"Client view of the cart"
//	@Success		200			{object}	models.CheckoutResponse		"Gateway URL and signed fields"
//	@Failure		400			{object}	response.ErrorResponse		"Cart is empty"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/payment/process [post]
func (h *PaymentHandler) Process() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), models.UserIdentity(claims.UserID), claims.Email, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout started", slog.String("orderId", resp.OrderID.String()))
		response.WriteJson(w, http.StatusOK, resp)
	}
}

// Notify godoc
//
//	@Summary		Payment gateway notification
//	@Description	Receives the gateway's server-to-server payment notification. Replies with a bare OK once handled; any 5xx asks the gateway to retry.
//	@Tags			Payments
//	@Accept			x-www-form-urlencoded
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Failure		400	{string}	string	"Bad Request"
//	@Failure		403	{string}	string	"Forbidden"
//	@Failure		500	{string}	string	"Internal Server Error"
//	@Router			/payment/notify [post]
func (h *PaymentHandler) Notify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxNotificationBytes)
		if err := r.ParseForm(); err != nil {
			logger.Warn("Unreadable payment notification", slog.String("error", err.Error()))
			response.Text(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
			return
		}

		fields := payfast.FieldsFromForm(r.PostForm)
		logger = logger.With(
			slog.String("gatewayTransactionId", fields[payfast.FieldGatewayID]),
			slog.String("paymentId", fields[payfast.FieldPaymentID]))

		result, err := h.paymentService.HandleNotification(r.Context(), fields)
		if err != nil {
			status := errors.HTTPStatus(err)

			if status >= http.StatusInternalServerError {
				logger.Error("Payment notification failed, gateway will retry", slog.Any("error", err))
			} else {
				logger.Warn("Payment notification rejected", slog.Any("error", err))
			}

			response.Text(w, status, http.StatusText(status))
			return
		}

		attrs := []any{slog.String("outcome", string(result.Outcome)), slog.Bool("transitioned", result.Transitioned)}
		if result.Order != nil {
			attrs = append(attrs, slog.String("orderId", result.Order.ID.String()), slog.String("status", string(result.Order.Status)))
		}
		logger.Info("Payment notification handled", attrs...)

		response.Text(w, http.StatusOK, "OK")
	}
}
