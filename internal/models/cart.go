package models

import (
	"fmt"
	"time"
)

// CartItem is one line in a cart, and the same shape is snapshotted into an
// order at submission time. ID is synthetic (meal id + insertion timestamp)
// so that re-adding a meal increments quantity instead of duplicating a row.
type CartItem struct {
	ID          string  `json:"id"`
	MealID      string  `json:"meal_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SellerID    string  `json:"seller_id"`
	SellerName  string  `json:"seller_name"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is a read-only snapshot of a user's cart. Insertion order is
// preserved; Total is derived from the items on every snapshot, never stored
// separately.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

func NewCartSnapshot(items []CartItem) Cart {
	var total float64

	for _, item := range items {
		total += item.LineTotal()
	}

	return Cart{Items: items, Total: total}
}

func (c Cart) SellerID() string {
	if len(c.Items) == 0 {
		return ""
	}

	return c.Items[0].SellerID
}

func (c Cart) ItemsCount() int {
	var count int

	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// Meal is the descriptor the UI sends on "add to cart". It mirrors what a
// meal card on the browse screen knows about a dish.
type Meal struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	SellerID    string  `json:"seller_id" validate:"required"`
	SellerName  string  `json:"seller_name"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// NewCartItem builds the cart line for a meal with quantity 1.
func NewCartItem(meal Meal, now time.Time) CartItem {
	return CartItem{
		ID:          fmt.Sprintf("%s-%d", meal.ID, now.UnixMilli()),
		MealID:      meal.ID,
		Name:        meal.Name,
		Price:       meal.Price,
		Quantity:    1,
		SellerID:    meal.SellerID,
		SellerName:  meal.SellerName,
		Description: meal.Description,
		ImageURL:    meal.ImageURL,
	}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
