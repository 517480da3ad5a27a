package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	appErrors "github.com/yankhoury/homeplate/internal/errors"
	"github.com/yankhoury/homeplate/internal/metrics"
	"github.com/yankhoury/homeplate/internal/models"
	"github.com/yankhoury/homeplate/internal/upstream"
)

const (
	paymentMethodCash = "cash"
	minAddressLength  = 5
)

// OrderService tracks the lifecycle of submitted orders. The backend is the
// source of truth: Load replaces the whole local list, while Checkout and
// Cancel apply optimistic local updates that the next Load overwrites.
type OrderService interface {
	Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*models.Order, error)
	Load(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	backend upstream.Client
	carts   CartService

	// per-user order cache, most recent first
	mu     sync.RWMutex
	orders map[string][]models.Order

	// one in-flight cart/order mutation per user; the mobile UI issues them
	// serially but nothing stops a double-tap from racing otherwise
	locks sync.Map
}

func NewOrderService(backend upstream.Client, carts CartService) OrderService {
	return &orderService{
		backend: backend,
		carts:   carts,
		orders:  make(map[string][]models.Order),
	}
}

func (s *orderService) userLock(userID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})

	return lock.(*sync.Mutex)
}

// Checkout submits the user's cart as an order. Local preconditions are
// checked before any network call. The cart is cleared only after the
// backend confirms creation, so a failed submission leaves it intact for
// retry.
func (s *orderService) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.Order, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()

		return nil, appErrors.EmptyCartError()
	}

	if req.DeliveryOption == models.DeliveryOptionDelivery {
		if len(strings.TrimSpace(req.DeliveryAddress)) < minAddressLength {
			metrics.CheckoutFailures.WithLabelValues("invalid_address").Inc()

			return nil, appErrors.InvalidAddressError("A delivery address of at least 5 characters is required for delivery")
		}
	}

	payload := &models.CreateOrderPayload{
		CookerID:       cart.SellerID(),
		OrderItems:     make([]models.OrderItemPayload, 0, len(cart.Items)),
		DeliveryOption: req.DeliveryOption,
		PaymentMethod:  paymentMethodCash,
	}

	if req.DeliveryOption == models.DeliveryOptionDelivery {
		payload.DeliveryAddress = req.DeliveryAddress
	}

	for _, item := range cart.Items {
		payload.OrderItems = append(payload.OrderItems, models.OrderItemPayload{
			Meal:     item.MealID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	raw, err := s.backend.CreateOrder(ctx, payload)
	if err != nil {
		metrics.CheckoutFailures.WithLabelValues("upstream").Inc()

		return nil, appErrors.SubmissionFailedError(upstreamMessage(err, "Order submission failed")).WithError(err)
	}

	order := NormalizeOrder(*raw, time.Now())

	// the backend may omit the snapshot it just accepted; fall back to the
	// cart contents so the local copy is always renderable
	if len(order.Items) == 0 {
		order.Items = cart.Items
	}

	if order.Total == 0 {
		order.Total = cart.Total
	}

	if order.ItemsCount == 0 {
		order.ItemsCount = cart.ItemsCount()
	}

	s.mu.Lock()
	s.orders[userID] = append([]models.Order{order}, s.orders[userID]...)
	s.mu.Unlock()

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	metrics.OrdersSubmitted.Inc()

	return &order, nil
}

// Cancel requests cancellation upstream, then flips only the matching local
// order's status. Cancelled orders stay in the list for history.
func (s *orderService) Cancel(ctx context.Context, userID, orderID string) (*models.Order, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if cached, ok := s.cachedOrder(userID, orderID); ok && cached.Status.IsTerminal() {
		return nil, appErrors.BadRequestError("Order is already " + string(cached.Status) + " and cannot be cancelled")
	}

	if err := s.backend.CancelOrder(ctx, orderID); err != nil {
		return nil, appErrors.CancellationFailedError(upstreamMessage(err, "Order cancellation failed")).WithError(err)
	}

	metrics.OrdersCancelled.Inc()

	if order, ok := s.setStatus(userID, orderID, models.StatusCancelled); ok {
		return order, nil
	}

	// not cached locally (e.g. fresh session); the backend accepted it anyway
	return &models.Order{ID: orderID, Status: models.StatusCancelled}, nil
}

// Load fetches the user's orders and replaces the local list wholesale,
// newest first. Optimistic local states from Checkout/Cancel do not survive
// a reload.
func (s *orderService) Load(ctx context.Context, userID string) ([]models.Order, error) {
	rawOrders, err := s.backend.MyOrders(ctx)
	if err != nil {
		return nil, appErrors.UpstreamError(upstreamMessage(err, "Failed to load orders")).WithError(err)
	}

	now := time.Now()
	orders := make([]models.Order, 0, len(rawOrders))

	for _, raw := range rawOrders {
		orders = append(orders, NormalizeOrder(raw, now))
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	s.mu.Lock()
	s.orders[userID] = orders
	s.mu.Unlock()

	out := make([]models.Order, len(orders))
	copy(out, orders)

	return out, nil
}

// UpdateStatus is the seller-side transition (accept, reject, ready, …). The
// backend acknowledges; the local copy is updated when present.
func (s *orderService) UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.backend.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, appErrors.UpstreamError(upstreamMessage(err, "Failed to update order status")).WithError(err)
	}

	if order, ok := s.setStatus(userID, orderID, status); ok {
		return order, nil
	}

	return &models.Order{ID: orderID, Status: status}, nil
}

func (s *orderService) cachedOrder(userID, orderID string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders[userID] {
		if order.ID == orderID {
			return order, true
		}
	}

	return models.Order{}, false
}

func (s *orderService) setStatus(userID, orderID string, status models.OrderStatus) (*models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.orders[userID]

	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
			updated := orders[i]

			return &updated, true
		}
	}

	return nil, false
}

// upstreamMessage prefers the backend's own error message over the generic
// fallback, mirroring how the mobile app surfaced server errors.
func upstreamMessage(err error, fallback string) string {
	var upstreamErr *upstream.UpstreamError

	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}

	return fallback
}
