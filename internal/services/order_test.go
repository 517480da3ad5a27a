package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yankhoury/homeplate/internal/cartstore"
	appErrors "github.com/yankhoury/homeplate/internal/errors"
	"github.com/yankhoury/homeplate/internal/models"
	service "github.com/yankhoury/homeplate/internal/services"
	"github.com/yankhoury/homeplate/internal/services/mocks"
	"github.com/yankhoury/homeplate/internal/upstream"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func newOrderFixture() (*mocks.Backend, service.CartService, service.OrderService, string) {
	backend := new(mocks.Backend)
	cartService := service.NewCartService(cartstore.NewMemoryStore())
	orderService := service.NewOrderService(backend, cartService)

	return backend, cartService, orderService, "user-1"
}

func fillCart(t *testing.T, cartService service.CartService, userID string) *models.Cart {
	t.Helper()

	ctx := context.Background()

	_, err := cartService.AddItem(ctx, userID, mealFixture("meal-1", "seller-1", 1000))
	assert.NoError(t, err)
	_, err = cartService.AddItem(ctx, userID, mealFixture("meal-1", "seller-1", 1000))
	assert.NoError(t, err)
	cart, err := cartService.AddItem(ctx, userID, mealFixture("meal-2", "seller-1", 500))
	assert.NoError(t, err)

	return cart
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Empty Cart Makes No Network Call", func(t *testing.T) {
		// Arrange
		backend, _, orderService, userID := newOrderFixture()

		// Act
		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
		backend.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Short Delivery Address Makes No Network Call", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		fillCart(t, cartService, userID)

		// Act
		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{
			DeliveryOption:  models.DeliveryOptionDelivery,
			DeliveryAddress: "ab",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidAddress, appErr.Code)
		backend.AssertNotCalled(t, "CreateOrder")

		cart, err := cartService.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 2)
	})

	t.Run("Success - Order Created, Cart Cleared", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		cart := fillCart(t, cartService, userID)
		preCount := cart.ItemsCount()

		raw := &models.RawOrder{
			MongoID:     "order-123",
			Status:      "reçu",
			CreatedAt:   "2026-08-29T12:00:00Z",
			TotalAmount: floatPtr(2500),
			OrderItems: []models.RawOrderItem{
				{MongoID: "line-1", Meal: models.MealRef{ID: "meal-1"}, Quantity: intPtr(2), Price: floatPtr(1000)},
				{MongoID: "line-2", Meal: models.MealRef{ID: "meal-2"}, Quantity: intPtr(1), Price: floatPtr(500)},
			},
		}

		backend.On("CreateOrder", mock.Anything, mock.MatchedBy(func(payload *models.CreateOrderPayload) bool {
			return payload.CookerID == "seller-1" &&
				payload.PaymentMethod == "cash" &&
				payload.DeliveryOption == models.DeliveryOptionDelivery &&
				payload.DeliveryAddress == "12 Rue des Jardins" &&
				len(payload.OrderItems) == 2 &&
				payload.OrderItems[0].Meal == "meal-1" &&
				payload.OrderItems[0].Quantity == 2 &&
				payload.OrderItems[0].Price == 1000
		})).Return(raw, nil).Once()

		// Act
		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{
			DeliveryOption:  models.DeliveryOptionDelivery,
			DeliveryAddress: "12 Rue des Jardins",
		})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, "order-123", order.ID)
		assert.Equal(t, models.StatusReceived, order.Status)
		assert.Equal(t, 2500.0, order.Total)
		assert.Equal(t, preCount, order.ItemsCount)

		emptied, err := cartService.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Empty(t, emptied.Items)
		backend.AssertExpectations(t)
	})

	t.Run("Failure - Backend Rejection Preserves Cart", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		before := fillCart(t, cartService, userID)

		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, &upstream.UpstreamError{StatusCode: 400, Message: "Cuisinier indisponible"}).Once()

		// Act
		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeSubmissionFailed, appErr.Code)
		assert.Equal(t, "Cuisinier indisponible", appErr.Message) // server message surfaced

		after, err := cartService.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, before.Items, after.Items)
		assert.Equal(t, before.Total, after.Total)
		backend.AssertExpectations(t)
	})

	t.Run("Success - Sparse Backend Reply Falls Back To Cart Snapshot", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		cart := fillCart(t, cartService, userID)

		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&models.RawOrder{MongoID: "order-9"}, nil).Once()

		// Act
		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, cart.Items, order.Items)
		assert.Equal(t, cart.Total, order.Total)
		assert.Equal(t, cart.ItemsCount(), order.ItemsCount)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, backend *mocks.Backend, cartService service.CartService, orderService service.OrderService, userID, orderID string) *models.Order {
		t.Helper()
		fillCart(t, cartService, userID)
		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&models.RawOrder{MongoID: orderID, Status: "reçu"}, nil).Once()

		order, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})
		assert.NoError(t, err)

		return order
	}

	t.Run("Success - Only The Matching Order's Status Changes", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		first := submit(t, backend, cartService, orderService, userID, "order-1")
		second := submit(t, backend, cartService, orderService, userID, "order-2")

		backend.On("CancelOrder", mock.Anything, "order-1").Return(nil).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, userID, "order-1")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)

		// everything but the status is untouched
		expected := *first
		expected.Status = models.StatusCancelled
		assert.Equal(t, expected, *cancelled)

		// the other order retained every field
		backend.On("CancelOrder", mock.Anything, "order-2").Return(nil).Once()
		other, err := orderService.Cancel(ctx, userID, "order-2")
		assert.NoError(t, err)
		expectedOther := *second
		expectedOther.Status = models.StatusCancelled
		assert.Equal(t, expectedOther, *other)
		backend.AssertExpectations(t)
	})

	t.Run("Failure - Backend Refusal Leaves Local Status Unchanged", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		submit(t, backend, cartService, orderService, userID, "order-1")

		backend.On("CancelOrder", mock.Anything, "order-1").
			Return(&upstream.UpstreamError{StatusCode: 409, Message: "Commande déjà en livraison"}).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, userID, "order-1")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cancelled)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeCancellationFailed, appErr.Code)
		assert.Equal(t, "Commande déjà en livraison", appErr.Message)
		backend.AssertExpectations(t)
	})

	t.Run("Failure - Terminal Order Cannot Be Cancelled", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		fillCart(t, cartService, userID)
		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&models.RawOrder{MongoID: "order-1", Status: "livrée"}, nil).Once()
		_, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})
		assert.NoError(t, err)

		// Act
		cancelled, err := orderService.Cancel(ctx, userID, "order-1")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cancelled)
		backend.AssertNotCalled(t, "CancelOrder")
	})

	t.Run("Success - Uncached Order Still Cancels Upstream", func(t *testing.T) {
		// Arrange
		backend, _, orderService, userID := newOrderFixture()
		backend.On("CancelOrder", mock.Anything, "order-77").Return(nil).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, userID, "order-77")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "order-77", cancelled.ID)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Full Replace Sorted Newest First", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()

		// seed a local optimistic order that the reload must overwrite
		fillCart(t, cartService, userID)
		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&models.RawOrder{MongoID: "local-only", Status: "reçu"}, nil).Once()
		_, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})
		assert.NoError(t, err)

		backend.On("MyOrders", mock.Anything).Return([]models.RawOrder{
			{MongoID: "older", CreatedAt: "2026-08-01T10:00:00Z", Status: "livrée"},
			{MongoID: "newer", CreatedAt: "2026-08-20T10:00:00Z", Status: "acceptée"},
		}, nil).Once()

		// Act
		orders, err := orderService.Load(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
		assert.Equal(t, "newer", orders[0].ID)
		assert.Equal(t, "older", orders[1].ID)
		backend.AssertExpectations(t)
	})

	t.Run("Failure - Upstream Error Is Surfaced", func(t *testing.T) {
		// Arrange
		backend, _, orderService, userID := newOrderFixture()
		backend.On("MyOrders", mock.Anything).
			Return(nil, &upstream.UpstreamError{StatusCode: 503}).Once()

		// Act
		orders, err := orderService.Load(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, orders)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstreamError, appErr.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Cached Order Is Updated", func(t *testing.T) {
		// Arrange
		backend, cartService, orderService, userID := newOrderFixture()
		fillCart(t, cartService, userID)
		backend.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&models.RawOrder{MongoID: "order-1", Status: "reçu"}, nil).Once()
		_, err := orderService.Checkout(ctx, userID, &models.CheckoutRequest{DeliveryOption: models.DeliveryOptionPickup})
		assert.NoError(t, err)

		backend.On("UpdateOrderStatus", mock.Anything, "order-1", models.StatusAccepted).Return(nil).Once()

		// Act
		order, err := orderService.UpdateStatus(ctx, userID, "order-1", models.StatusAccepted)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, order.Status)
		backend.AssertExpectations(t)
	})

	t.Run("Failure - Backend Error Leaves Cache Alone", func(t *testing.T) {
		// Arrange
		backend, _, orderService, userID := newOrderFixture()
		backend.On("UpdateOrderStatus", mock.Anything, "order-1", models.StatusAccepted).
			Return(&upstream.UpstreamError{StatusCode: 403, Message: "Pas votre commande"}).Once()

		// Act
		order, err := orderService.UpdateStatus(ctx, userID, "order-1", models.StatusAccepted)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)
	})
}
