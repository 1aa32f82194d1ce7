package services

import (
	"context"
	"io"
	"time"

	"food-delivery/models"
)

// Store interfaces are declared here, next to the services that consume
// them. The pgx implementations live in the repositories package.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, page models.Page) ([]models.User, int, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type RefreshTokenStore interface {
	Save(ctx context.Context, token *models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id int64) (bool, error)
	RevokeAllForUser(ctx context.Context, userID int64) error
}

type PasswordResetStore interface {
	DeleteByUser(ctx context.Context, userID int64) error
	Create(ctx context.Context, code *models.PasswordResetCode) error
	FindLatestByUser(ctx context.Context, userID int64) (*models.PasswordResetCode, error)
	FindByResetToken(ctx context.Context, token string) (*models.PasswordResetCode, error)
	Update(ctx context.Context, code *models.PasswordResetCode) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type RestaurantStore interface {
	Create(ctx context.Context, r *models.Restaurant) error
	FindByID(ctx context.Context, id int64) (*models.Restaurant, error)
	List(ctx context.Context, filter models.RestaurantFilter, page models.Page) ([]models.Restaurant, int, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Restaurant, error)
	Update(ctx context.Context, r *models.Restaurant) error
	UpdateOpen(ctx context.Context, id int64, isOpen bool) error
	Delete(ctx context.Context, id int64) error
}

type MenuStore interface {
	Create(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, id int64) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, availableOnly bool) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	UpdateAvailability(ctx context.Context, id int64, available bool) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}

type AddressStore interface {
	Create(ctx context.Context, address *models.Address) error
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, address *models.Address) error
	SetDefault(ctx context.Context, userID, addressID int64) error
	Delete(ctx context.Context, id int64) error
}

// CartStore mutations lock the user's cart row so they serialize with
// order creation.
type CartStore interface {
	FindByUser(ctx context.Context, userID int64) (*models.Cart, error)
	FindItem(ctx context.Context, itemID int64) (*models.CartItem, error)
	// AddItem creates the cart on first use and merges a line with the same
	// menu item and options. It returns models.ErrCartRestaurantMismatch when
	// the cart holds items of another restaurant.
	AddItem(ctx context.Context, userID, restaurantID int64, line models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	// RemoveItem deletes the cart as well when its last item goes.
	RemoveItem(ctx context.Context, itemID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type OrderStore interface {
	// CreateFromCart inserts the order with its items and initial history
	// row and deletes the cart, all in one transaction. It returns
	// models.ErrCartChanged when the cart version no longer matches.
	CreateFromCart(ctx context.Context, order *models.Order, cartID int64, cartVersion int) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	// UpdateStatus applies the change only while the order is still in
	// change.From and reports whether a row was updated.
	UpdateStatus(ctx context.Context, change models.StatusChange) (bool, error)
	ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Order, int, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, page models.Page) ([]models.Order, int, error)
	History(ctx context.Context, orderID int64) ([]models.OrderStatusHistory, error)
}

// MenuCache stores rendered restaurant menus. Implementations must treat
// every failure as a cache miss.
type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID int64) (*models.RestaurantMenu, bool)
	SetMenu(ctx context.Context, menu *models.RestaurantMenu)
	InvalidateMenu(ctx context.Context, restaurantID int64)
}

// Notifier receives order events. Implementations must not block the caller
// and must not report delivery failures.
type Notifier interface {
	OrderCreated(order *models.Order, customerEmail *string)
	OrderStatusChanged(order *models.Order, oldStatus models.OrderStatus)
}

// CodeSender delivers password reset codes out-of-band.
type CodeSender interface {
	SendResetCode(ctx context.Context, to, code string) error
}

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}
