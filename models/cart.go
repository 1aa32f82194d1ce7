package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCartQuantity caps a single cart line, merged lines included.
const MaxCartQuantity = 99

// Cart is the pending basket of one user against one restaurant. Version is
// bumped on every mutation and checked when the cart is turned into an order.
type Cart struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	RestaurantID int64      `json:"restaurant_id"`
	Version      int        `json:"-"`
	Items        []CartItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CartItem carries the live menu name and price; they are only frozen once
// copied into an OrderItem.
type CartItem struct {
	ID              int64           `json:"id"`
	CartID          int64           `json:"cart_id"`
	UserID          int64           `json:"-"`
	MenuItemID      int64           `json:"menu_item_id"`
	MenuItemName    string          `json:"menu_item_name"`
	ImageURL        *string         `json:"image_url,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	IsAvailable     bool            `json:"is_available"`
	Quantity        int             `json:"quantity"`
	SelectedOptions *string         `json:"selected_options,omitempty"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

type CartRestaurant struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ImageURL       *string         `json:"image_url,omitempty"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	IsOpen         bool            `json:"is_open"`
}

type CartLine struct {
	CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartSummary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
	MeetsMinimum bool            `json:"meets_minimum"`
}

type CartView struct {
	ID         *int64          `json:"id,omitempty"`
	UserID     int64           `json:"user_id"`
	Restaurant *CartRestaurant `json:"restaurant,omitempty"`
	Items      []CartLine      `json:"items"`
	Summary    CartSummary     `json:"summary"`
}

// NewCartView builds the response shape of a cart. A nil cart yields an
// empty view.
func NewCartView(userID int64, cart *Cart, r *Restaurant) *CartView {
	view := &CartView{
		UserID: userID,
		Items:  []CartLine{},
		Summary: CartSummary{
			Subtotal:    decimal.Zero,
			DeliveryFee: decimal.Zero,
			Total:       decimal.Zero,
		},
	}
	if cart.IsEmpty() {
		return view
	}

	id := cart.ID
	view.ID = &id
	for _, item := range cart.Items {
		view.Items = append(view.Items, CartLine{CartItem: item, Subtotal: item.Subtotal()})
	}

	subtotal := cart.Subtotal()
	view.Summary.Subtotal = subtotal
	view.Summary.ItemCount = cart.ItemCount()
	if r != nil {
		view.Restaurant = &CartRestaurant{
			ID:             r.ID,
			Name:           r.Name,
			ImageURL:       r.ImageURL,
			MinOrderAmount: r.MinOrderAmount,
			DeliveryFee:    r.DeliveryFee,
			IsOpen:         r.IsOpen,
		}
		view.Summary.DeliveryFee = r.DeliveryFee
		view.Summary.MeetsMinimum = subtotal.GreaterThanOrEqual(r.MinOrderAmount)
	}
	view.Summary.Total = subtotal.Add(view.Summary.DeliveryFee)
	return view
}
