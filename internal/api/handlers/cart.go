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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the authenticated user's cart with its derived total.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart
//	@Failure		401	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.Get(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a meal to the cart
//	@Description	Adds one unit of the meal. Re-adding the same meal increments its quantity; a meal from a different seller than the cart's is rejected.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			meal	body		models.Meal	true	"Meal descriptor"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse	"Cart holds meals from another seller"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var meal models.Meal
		if !utils.ParseAndValidate(r, w, &meal, h.validator) {
			logger.Warn("Invalid add-to-cart input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &meal)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("mealId", meal.ID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("mealId", meal.ID), slog.Float64("cartTotal", cart.Total))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set a cart line's quantity
//	@Description	Quantity zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Cart item id"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.Cart
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		itemID := r.PathValue("id")
		if itemID == "" {
			response.Error(w, errors.BadRequestError("Cart item id is required"))
			return
		}

		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Invalid quantity input", slog.String("error", err.Error()))
			response.Error(w, errors.ValidationError(err.Error()))
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, itemID, req.Quantity)
		if err != nil {
			logger.Error("Failed to update quantity", slog.String("itemId", itemID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string	true	"Cart item id"
//	@Success		200	{object}	models.Cart
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		itemID := r.PathValue("id")
		if itemID == "" {
			response.Error(w, errors.BadRequestError("Cart item id is required"))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, itemID)
		if err != nil {
			logger.Error("Failed to remove item", slog.String("itemId", itemID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		204	"Cart cleared"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.Clear(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
