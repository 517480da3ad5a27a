// Package mocks provides testify mocks for the service layer and the
// upstream backend client.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yankhoury/homeplate/internal/models"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID string, meal *models.Meal) (*models.Cart, error) {
	args := m.Called(ctx, userID, meal)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID, quantity)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) Cancel(ctx context.Context, userID, orderID string) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) Load(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderService) UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID, status)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

// Backend mocks the upstream ordering API client.
type Backend struct {
	mock.Mock
}

func (m *Backend) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (*models.RawOrder, error) {
	args := m.Called(ctx, payload)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.RawOrder), args.Error(1)
}

func (m *Backend) MyOrders(ctx context.Context) ([]models.RawOrder, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.RawOrder), args.Error(1)
}

func (m *Backend) CancelOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)

	return args.Error(0)
}

func (m *Backend) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, status)

	return args.Error(0)
}
