package models

import (
	"encoding/json"
	"strings"
	"time"
)

type DeliveryOption string

const (
	DeliveryOptionDelivery DeliveryOption = "delivery"
	DeliveryOptionPickup   DeliveryOption = "pickup"
)

// Order is the canonical, fully-populated model every screen renders from.
// It is an immutable snapshot of the cart at submission time; later cart
// mutations never touch it. Only the backend (via reload or an acknowledged
// cancellation) changes its status.
type Order struct {
	ID              string         `json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	Status          OrderStatus    `json:"status"`
	Total           float64        `json:"total"`
	ItemsCount      int            `json:"items_count"`
	Items           []CartItem     `json:"items"`
	DeliveryOption  DeliveryOption `json:"delivery_option,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
}

// Reference is the short human-readable order id shown on receipts and
// order cards, derived from the tail of the opaque backend id.
func (o Order) Reference() string {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}

		return -1
	}, o.ID)

	if clean == "" {
		return "CMD-00000"
	}

	if len(clean) > 5 {
		clean = clean[len(clean)-5:]
	}

	return "CMD-" + strings.ToUpper(clean)
}

// ItemsSummary is the one-line "Riz gras, Attiéké, Alloco..." digest used on
// order cards: the first three named items, with an ellipsis when more exist.
func (o Order) ItemsSummary() string {
	var names []string

	for _, item := range o.Items {
		if item.Name == "" {
			continue
		}

		names = append(names, item.Name)
		if len(names) == 3 {
			break
		}
	}

	if len(names) == 0 {
		return "No items"
	}

	summary := strings.Join(names, ", ")
	if len(o.Items) > 3 {
		summary += "..."
	}

	return summary
}

// OrderView is the order plus everything the UI derives from its status, so
// screens never re-implement the mapping.
type OrderView struct {
	Order
	Reference    string             `json:"reference"`
	ItemsSummary string             `json:"items_summary"`
	Presentation StatusPresentation `json:"presentation"`
	Active       bool               `json:"active"`
}

func NewOrderView(order Order) OrderView {
	return OrderView{
		Order:        order,
		Reference:    order.Reference(),
		ItemsSummary: order.ItemsSummary(),
		Presentation: order.Status.Presentation(),
		Active:       order.Status.IsActive(),
	}
}

type CheckoutRequest struct {
	DeliveryOption  DeliveryOption `json:"delivery_option" validate:"required,oneof=delivery pickup"`
	DeliveryAddress string         `json:"delivery_address"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=accepted rejected ready out_for_delivery delivered"`
}

// --- upstream wire shapes -------------------------------------------------
//
// The backend is inconsistent about which fields it populates: totals and
// counts may be absent, nested meal/seller references arrive either as bare
// id strings or embedded objects, and ids appear as "_id" or "id". These
// loose types exist only to be fed through NormalizeOrder; they must never
// leak past that boundary.

type RawOrder struct {
	MongoID         string         `json:"_id"`
	PlainID         string         `json:"id"`
	CreatedAt       string         `json:"createdAt"`
	Date            string         `json:"date"`
	Status          string         `json:"status"`
	TotalAmount     *float64       `json:"totalAmount"`
	Total           *float64       `json:"total"`
	ItemsCount      *int           `json:"itemsCount"`
	OrderItems      []RawOrderItem `json:"orderItems"`
	Items           []RawOrderItem `json:"items"`
	DeliveryOption  string         `json:"deliveryOption"`
	DeliveryAddress string         `json:"deliveryAddress"`
}

func (r RawOrder) OrderID() string {
	if r.MongoID != "" {
		return r.MongoID
	}

	return r.PlainID
}

// LineItems prefers the backend's "orderItems" field, falling back to the
// older "items" spelling some endpoints still use.
func (r RawOrder) LineItems() []RawOrderItem {
	if len(r.OrderItems) > 0 {
		return r.OrderItems
	}

	return r.Items
}

type RawOrderItem struct {
	MongoID  string   `json:"_id"`
	PlainID  string   `json:"id"`
	Meal     MealRef  `json:"meal"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

func (r RawOrderItem) ItemID() string {
	if r.MongoID != "" {
		return r.MongoID
	}

	return r.PlainID
}

// RawMeal is the embedded form of a meal reference.
type RawMeal struct {
	MongoID     string    `json:"_id"`
	PlainID     string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Price       *float64  `json:"price"`
	Cooker      SellerRef `json:"cooker"`
}

func (m RawMeal) MealID() string {
	if m.MongoID != "" {
		return m.MongoID
	}

	return m.PlainID
}

// MealRef tolerates both wire forms of an order item's meal: a bare id
// string or an embedded RawMeal object.
type MealRef struct {
	ID   string
	Meal *RawMeal
}

func (m *MealRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		m.ID = id

		return nil
	}

	var meal RawMeal
	if err := json.Unmarshal(data, &meal); err != nil {
		// Tolerate null/unexpected shapes; normalization fills defaults.
		return nil
	}

	m.Meal = &meal
	m.ID = meal.MealID()

	return nil
}

// RawSeller keeps the backend's French field names for the cook's name.
type RawSeller struct {
	MongoID   string `json:"_id"`
	PlainID   string `json:"id"`
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Name      string `json:"name"`
}

func (s RawSeller) SellerID() string {
	if s.MongoID != "" {
		return s.MongoID
	}

	return s.PlainID
}

func (s RawSeller) DisplayName() string {
	if s.FirstName != "" && s.LastName != "" {
		return s.FirstName + " " + s.LastName
	}

	if s.Name != "" {
		return s.Name
	}

	return ""
}

// SellerRef tolerates a bare id string or an embedded RawSeller object.
type SellerRef struct {
	ID     string
	Seller *RawSeller
}

func (s *SellerRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		s.ID = id

		return nil
	}

	var seller RawSeller
	if err := json.Unmarshal(data, &seller); err != nil {
		return nil
	}

	s.Seller = &seller
	s.ID = seller.SellerID()

	return nil
}

// --- upstream submission payload ------------------------------------------

type OrderItemPayload struct {
	Meal     string  `json:"meal"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderPayload struct {
	CookerID        string             `json:"cookerId"`
	OrderItems      []OrderItemPayload `json:"orderItems"`
	DeliveryOption  DeliveryOption     `json:"deliveryOption"`
	PaymentMethod   string             `json:"paymentMethod"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
}
