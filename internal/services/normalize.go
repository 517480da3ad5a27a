package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yankhoury/homeplate/internal/models"
)

// Free-text coming back from the backend (meal names, descriptions, cook
// names, addresses) is stripped of any markup before it enters the canonical
// model the UI renders.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

const (
	fallbackItemName   = "Item"
	fallbackSellerName = "Seller"
)

// NormalizeOrder converts the backend's loosely-shaped order into the
// canonical Order. Every field is treated as independently optional: direct
// values win, otherwise the field is derived from the line items, otherwise
// it defaults to zero/empty. The result always has defined numerics so the
// UI can render a row for any order, however partial the payload was.
func NormalizeOrder(raw models.RawOrder, now time.Time) models.Order {
	items := normalizeItems(raw.LineItems(), now)

	total := 0.0

	switch {
	case raw.TotalAmount != nil:
		total = *raw.TotalAmount
	case raw.Total != nil:
		total = *raw.Total
	default:
		for _, item := range items {
			total += item.LineTotal()
		}
	}

	itemsCount := 0
	if raw.ItemsCount != nil {
		itemsCount = *raw.ItemsCount
	} else {
		for _, item := range items {
			itemsCount += item.Quantity
		}
	}

	status := models.StatusReceived
	if raw.Status != "" {
		status = models.ParseOrderStatus(raw.Status)
	}

	return models.Order{
		ID:              raw.OrderID(),
		CreatedAt:       parseOrderTime(raw.CreatedAt, raw.Date, now),
		Status:          status,
		Total:           total,
		ItemsCount:      itemsCount,
		Items:           items,
		DeliveryOption:  normalizeDeliveryOption(raw.DeliveryOption),
		DeliveryAddress: sanitize(raw.DeliveryAddress),
	}
}

func normalizeItems(rawItems []models.RawOrderItem, now time.Time) []models.CartItem {
	items := make([]models.CartItem, 0, len(rawItems))

	for i, rawItem := range rawItems {
		meal := rawItem.Meal.Meal
		if meal == nil {
			meal = &models.RawMeal{}
		}

		price := 0.0

		switch {
		case rawItem.Price != nil:
			price = *rawItem.Price
		case meal.Price != nil:
			price = *meal.Price
		}

		quantity := 1
		if rawItem.Quantity != nil {
			quantity = *rawItem.Quantity
		}

		name := sanitize(meal.Name)
		if name == "" {
			name = fallbackItemName
		}

		seller := meal.Cooker.Seller
		if seller == nil {
			seller = &models.RawSeller{}
		}

		sellerName := sanitize(seller.DisplayName())
		if sellerName == "" {
			sellerName = fallbackSellerName
		}

		id := rawItem.ItemID()
		if id == "" {
			id = fmt.Sprintf("item-%d-%d", now.UnixMilli(), i)
		}

		items = append(items, models.CartItem{
			ID:          id,
			MealID:      rawItem.Meal.ID,
			Name:        name,
			Price:       price,
			Quantity:    quantity,
			SellerID:    meal.Cooker.ID,
			SellerName:  sellerName,
			Description: sanitize(meal.Description),
			ImageURL:    strings.TrimSpace(meal.ImageURL),
		})
	}

	return items
}

func parseOrderTime(createdAt, date string, now time.Time) time.Time {
	for _, candidate := range []string{createdAt, date} {
		if candidate == "" {
			continue
		}

		if t, err := time.Parse(time.RFC3339, candidate); err == nil {
			return t
		}
	}

	return now
}

func normalizeDeliveryOption(raw string) models.DeliveryOption {
	switch raw {
	case "delivery", "livraison":
		return models.DeliveryOptionDelivery
	case "pickup", "retrait":
		return models.DeliveryOptionPickup
	default:
		return models.DeliveryOption(raw)
	}
}
