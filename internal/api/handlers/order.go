package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/yankhoury/homeplate/internal/api/middleware"
	"github.com/yankhoury/homeplate/internal/errors"
	"github.com/yankhoury/homeplate/internal/models"
	service "github.com/yankhoury/homeplate/internal/services"
	"github.com/yankhoury/homeplate/internal/utils"
	"github.com/yankhoury/homeplate/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Place an order from the current cart
//	@Description	Submits the cart to the ordering backend. The cart is cleared only after the backend confirms the order; on failure it is kept for retry.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Delivery option and address"
//	@Success		201			{object}	models.OrderView		"Created order"
//	@Failure		400			{object}	response.ErrorResponse	"Empty cart or unusable delivery address"
//	@Failure		401			{object}	response.ErrorResponse
//	@Failure		502			{object}	response.ErrorResponse	"Backend rejected the order"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
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

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created", slog.String("orderId", order.ID), slog.String("reference", order.Reference()))
		response.Success(w, http.StatusCreated, models.NewOrderView(*order))
	}
}

// ListOrders godoc
//	@Summary		List the user's orders
//	@Description	Reloads the order list from the backend (full replace, newest first) and returns it, optionally filtered into active orders or history.
//	@Tags			Orders
//	@Produce		json
//	@Param			scope	query		string	false	"active | history | all (default all)"
//	@Success		200		{array}		models.OrderView
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		502		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = "all"
		}

		if scope != "all" && scope != "active" && scope != "history" {
			response.Error(w, errors.BadRequestError("scope must be one of: active, history, all"))
			return
		}

		orders, err := h.orderService.Load(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		views := make([]models.OrderView, 0, len(orders))

		for _, order := range orders {
			if scope == "active" && !order.Status.IsActive() {
				continue
			}

			if scope == "history" && order.Status.IsActive() {
				continue
			}

			views = append(views, models.NewOrderView(order))
		}

		response.Success(w, http.StatusOK, views)
	}
}

// CancelOrder godoc
//	@Summary		Cancel an order
//	@Description	Requests cancellation from the backend; on success the local order stays in the list with status cancelled.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order id"
//	@Success		200	{object}	models.OrderView
//	@Failure		400	{object}	response.ErrorResponse	"Order already in a terminal state"
//	@Failure		502	{object}	response.ErrorResponse	"Backend refused the cancellation"
//	@Security		BearerAuth
//	@Router			/orders/{id}/cancel [patch]
func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID := r.PathValue("id")
		if orderID == "" {
			response.Error(w, errors.BadRequestError("Order id is required"))
			return
		}

		order, err := h.orderService.Cancel(r.Context(), claims.UserID, orderID)
		if err != nil {
			logger.Error("Cancellation failed", slog.String("orderId", orderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled", slog.String("orderId", orderID))
		response.Success(w, http.StatusOK, models.NewOrderView(*order))
	}
}

// UpdateOrderStatus godoc
//	@Summary		Update an order's status (seller side)
//	@Description	Seller dashboard transition: accept, reject, mark ready, out for delivery or delivered.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order id"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"Target status"
//	@Success		200		{object}	models.OrderView
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		502		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID := r.PathValue("id")
		if orderID == "" {
			response.Error(w, errors.BadRequestError("Order id is required"))
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid status update input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), claims.UserID, orderID, req.Status)
		if err != nil {
			logger.Error("Status update failed", slog.String("orderId", orderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("orderId", orderID), slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, models.NewOrderView(*order))
	}
}
