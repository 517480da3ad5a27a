package service

import (
	"context"
	"sync"
	"time"

	"github.com/yankhoury/homeplate/internal/cartstore"
	"github.com/yankhoury/homeplate/internal/errors"
	"github.com/yankhoury/homeplate/internal/models"
)

// CartService owns every user's in-progress cart. All lines in a cart share
// one seller; the invariant is enforced on add, never retro-checked. External
// code only sees snapshots, so the stored slices cannot be mutated behind
// the service's back.
type CartService interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, meal *models.Meal) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	store cartstore.Store

	// serializes read-modify-write cycles on the store; the UI is assumed to
	// issue one mutation at a time but the server cannot rely on that
	mu sync.Mutex
}

func NewCartService(store cartstore.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	cart := models.NewCartSnapshot(items)

	return &cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID string, meal *models.Meal) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	if len(items) > 0 && items[0].SellerID != meal.SellerID {
		return nil, errors.SellerConflictError()
	}

	merged := false

	for i := range items {
		if items[i].MealID == meal.ID {
			items[i].Quantity++
			merged = true

			break
		}
	}

	if !merged {
		items = append(items, models.NewCartItem(*meal, time.Now()))
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, errors.InternalError("Failed to update cart").WithError(err)
	}

	cart := models.NewCartSnapshot(items)

	return &cart, nil
}

// UpdateQuantity sets an item's quantity in place. A quantity of zero or
// less removes the item; that is a normal path to deletion, not an error.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity

			break
		}
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, errors.InternalError("Failed to update cart").WithError(err)
	}

	cart := models.NewCartSnapshot(items)

	return &cart, nil
}

// RemoveItem deletes the line with the given synthetic id. Removing an id
// that is not in the cart is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	kept := items[:0]

	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}

	if err := s.store.Save(ctx, userID, kept); err != nil {
		return nil, errors.InternalError("Failed to update cart").WithError(err)
	}

	cart := models.NewCartSnapshot(kept)

	return &cart, nil
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, userID); err != nil {
		return errors.InternalError("Failed to clear cart").WithError(err)
	}

	return nil
}
