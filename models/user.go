package models

import "time"

type Role string

const (
	RoleClient          Role = "CLIENT"
	RoleRestaurantOwner Role = "RESTAURANT_OWNER"
	RoleAdmin           Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleRestaurantOwner, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type User struct {
	ID              int64      `json:"id"`
	PhoneNumber     string     `json:"phone_number"`
	Email           *string    `json:"email,omitempty"`
	PasswordHash    string     `json:"-"`
	Name            string     `json:"name"`
	Role            Role       `json:"role"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

type PasswordResetCode struct {
	ID         int64
	UserID     int64
	Code       string
	ResetToken *string
	ExpiresAt  time.Time
	Attempts   int
	Verified   bool
	Used       bool
	CreatedAt  time.Time
}

type DashboardStats struct {
	TotalUsers       int `json:"total_users"`
	TotalRestaurants int `json:"total_restaurants"`
	TotalOrders      int `json:"total_orders"`
	PendingOrders    int `json:"pending_orders"`
}
