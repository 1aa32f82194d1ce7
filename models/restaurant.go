package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultEstimatedDeliveryMinutes applies when a restaurant has no ETA configured.
const DefaultEstimatedDeliveryMinutes = 45

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Restaurant struct {
	ID                    int64           `json:"id"`
	OwnerID               int64           `json:"owner_id"`
	CategoryID            *int64          `json:"category_id,omitempty"`
	CategoryName          *string         `json:"category_name,omitempty"`
	Name                  string          `json:"name"`
	Description           *string         `json:"description,omitempty"`
	Address               string          `json:"address"`
	City                  string          `json:"city"`
	Phone                 *string         `json:"phone,omitempty"`
	ImageURL              *string         `json:"image_url,omitempty"`
	Rating                decimal.Decimal `json:"rating"`
	MinOrderAmount        decimal.Decimal `json:"min_order_amount"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	EstimatedDeliveryTime *int            `json:"estimated_delivery_time,omitempty"`
	OpeningHours          *string         `json:"opening_hours,omitempty"`
	IsOpen                bool            `json:"is_open"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// DeliveryETA returns the expected delivery time for an order placed at now.
func (r *Restaurant) DeliveryETA(now time.Time) time.Time {
	minutes := DefaultEstimatedDeliveryMinutes
	if r.EstimatedDeliveryTime != nil && *r.EstimatedDeliveryTime > 0 {
		minutes = *r.EstimatedDeliveryTime
	}
	return now.Add(time.Duration(minutes) * time.Minute)
}

type RestaurantFilter struct {
	CategoryID *int64
	City       string
	IsOpen     *bool
}

type OptionType string

const (
	OptionSize  OptionType = "SIZE"
	OptionAddon OptionType = "ADDON"
	OptionSpice OptionType = "SPICE"
)

type MenuItemOption struct {
	ID         int64           `json:"id"`
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Type       OptionType      `json:"type"`
}

type MenuItem struct {
	ID           int64            `json:"id"`
	RestaurantID int64            `json:"restaurant_id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	Category     string           `json:"category"`
	ImageURL     *string          `json:"image_url,omitempty"`
	IsAvailable  bool             `json:"is_available"`
	SpicyLevel   int              `json:"spicy_level"`
	SortOrder    int              `json:"sort_order"`
	Options      []MenuItemOption `json:"options"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type RestaurantMenu struct {
	RestaurantID   int64          `json:"restaurant_id"`
	RestaurantName string         `json:"restaurant_name"`
	IsOpen         bool           `json:"is_open"`
	Categories     []MenuCategory `json:"categories"`
}

// GroupMenu groups items by their menu category, keeping the first-seen
// category order of the already sorted input.
func GroupMenu(r *Restaurant, items []MenuItem) *RestaurantMenu {
	menu := &RestaurantMenu{
		RestaurantID:   r.ID,
		RestaurantName: r.Name,
		IsOpen:         r.IsOpen,
		Categories:     []MenuCategory{},
	}

	index := map[string]int{}
	for _, item := range items {
		name := item.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(menu.Categories)
			index[name] = i
			menu.Categories = append(menu.Categories, MenuCategory{Name: name})
		}
		menu.Categories[i].Items = append(menu.Categories[i].Items, item)
	}
	return menu
}

type Address struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Address       string    `json:"address"`
	DetailAddress *string   `json:"detail_address,omitempty"`
	City          *string   `json:"city,omitempty"`
	Label         *string   `json:"label,omitempty"`
	Note          *string   `json:"note,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
