package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	PhoneNumber string  `json:"phone_number" binding:"required,min=8,max=20"`
	Password    string  `json:"password" binding:"required,min=6"`
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Role        Role    `json:"role" binding:"omitempty,oneof=CLIENT RESTAURANT_OWNER"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

type PasswordResetRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type VerifyResetCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,len=4,numeric"`
}

type VerifyResetCodeResponse struct {
	ResetToken string `json:"reset_token"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type AddressRequest struct {
	Address       string  `json:"address" binding:"required,max=255"`
	DetailAddress *string `json:"detail_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Label         *string `json:"label" binding:"omitempty,max=50"`
	Note          *string `json:"note" binding:"omitempty,max=255"`
	IsDefault     bool    `json:"is_default"`
}

type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type RestaurantRequest struct {
	OwnerID               int64           `json:"owner_id" binding:"omitempty,min=1"`
	CategoryID            *int64          `json:"category_id" binding:"omitempty,min=1"`
	Name                  string          `json:"name" binding:"required,max=200"`
	Description           *string         `json:"description"`
	Address               string          `json:"address" binding:"required,max=255"`
	City                  string          `json:"city" binding:"required,max=100"`
	Phone                 *string         `json:"phone" binding:"omitempty,max=20"`
	ImageURL              *string         `json:"image_url" binding:"omitempty,url"`
	MinOrderAmount        decimal.Decimal `json:"min_order_amount"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	EstimatedDeliveryTime *int            `json:"estimated_delivery_time" binding:"omitempty,min=1,max=240"`
	OpeningHours          *string         `json:"opening_hours"`
	IsOpen                *bool           `json:"is_open"`
}

type RestaurantStatusRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

type MenuItemOptionRequest struct {
	Name  string          `json:"name" binding:"required,max=100"`
	Price decimal.Decimal `json:"price"`
	Type  OptionType      `json:"type" binding:"required,oneof=SIZE ADDON SPICE"`
}

type MenuItemRequest struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Description *string                 `json:"description"`
	Price       decimal.Decimal         `json:"price"`
	Category    string                  `json:"category" binding:"max=100"`
	ImageURL    *string                 `json:"image_url" binding:"omitempty,url"`
	IsAvailable *bool                   `json:"is_available"`
	SpicyLevel  int                     `json:"spicy_level" binding:"min=0,max=5"`
	SortOrder   int                     `json:"sort_order"`
	Options     []MenuItemOptionRequest `json:"options" binding:"omitempty,dive"`
}

type MenuItemAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type AddCartItemRequest struct {
	MenuItemID      int64   `json:"menu_item_id" binding:"required,min=1"`
	Quantity        int     `json:"quantity" binding:"required,min=1,max=99"`
	SelectedOptions *string `json:"selected_options" binding:"omitempty,max=500"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"max=99"`
}

type CreateOrderRequest struct {
	AddressID      int64         `json:"address_id" binding:"required,min=1"`
	PaymentMethod  PaymentMethod `json:"payment_method" binding:"required,oneof=CREDIT_CARD CASH APPLE_PAY GOOGLE_PAY NAVER_PAY KAKAO_PAY"`
	SpecialRequest *string       `json:"special_request" binding:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=PENDING CONFIRMED PREPARING READY DELIVERING COMPLETED CANCELLED"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
