package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"food-delivery/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer   = models.Actor{ID: 1, Role: models.RoleClient}
	owner      = models.Actor{ID: 2, Role: models.RoleRestaurantOwner}
	otherUser  = models.Actor{ID: 3, Role: models.RoleClient}
	otherOwner = models.Actor{ID: 4, Role: models.RoleRestaurantOwner}
	admin      = models.Actor{ID: 9, Role: models.RoleAdmin}
)

type orderFixture struct {
	users       *fakeUsers
	restaurants *fakeRestaurants
	menus       *fakeMenus
	addresses   *fakeAddresses
	carts       *fakeCarts
	orders      *fakeOrders
	notifier    *recordingNotifier
	cartSvc     *CartService
	orderSvc    *OrderService
}

func newOrderFixture() *orderFixture {
	eta := 30
	f := &orderFixture{
		users: newFakeUsers(
			&models.User{ID: 1, PhoneNumber: "01011112222", Name: "Kim", Role: models.RoleClient, IsActive: true, Email: strPtr("kim@example.com")},
			&models.User{ID: 2, PhoneNumber: "01033334444", Name: "Lee", Role: models.RoleRestaurantOwner, IsActive: true},
			&models.User{ID: 3, PhoneNumber: "01055556666", Name: "Park", Role: models.RoleClient, IsActive: true},
		),
		restaurants: newFakeRestaurants(&models.Restaurant{
			ID:                    10,
			OwnerID:               2,
			Name:                  "Seoul Kitchen",
			City:                  "Seoul",
			MinOrderAmount:        decimal.NewFromInt(10000),
			DeliveryFee:           decimal.NewFromInt(3000),
			EstimatedDeliveryTime: &eta,
			IsOpen:                true,
			IsActive:              true,
		}, &models.Restaurant{
			ID:             11,
			OwnerID:        4,
			Name:           "Busan Noodles",
			City:           "Busan",
			MinOrderAmount: decimal.Zero,
			DeliveryFee:    decimal.NewFromInt(2000),
			IsOpen:         true,
			IsActive:       true,
		}),
		menus: newFakeMenus(
			&models.MenuItem{ID: 100, RestaurantID: 10, Name: "Bibimbap", Price: decimal.NewFromInt(8000), Category: "Rice", IsAvailable: true},
			&models.MenuItem{ID: 101, RestaurantID: 10, Name: "Mandu", Price: decimal.NewFromInt(5000), Category: "Sides", IsAvailable: true},
			&models.MenuItem{ID: 200, RestaurantID: 11, Name: "Milmyeon", Price: decimal.NewFromInt(9000), Category: "Noodles", IsAvailable: true},
		),
		addresses: newFakeAddresses(
			&models.Address{ID: 50, UserID: 1, Address: "1 Gangnam-daero", DetailAddress: strPtr("Apt 101")},
			&models.Address{ID: 51, UserID: 3, Address: "9 Jongno"},
		),
		notifier: &recordingNotifier{},
	}
	f.carts = newFakeCarts(f.menus)
	f.orders = newFakeOrders(f.carts)
	f.cartSvc = NewCartService(f.carts, f.menus, f.restaurants)
	f.orderSvc = NewOrderService(f.orders, f.carts, f.addresses, f.restaurants, f.users, f.notifier)
	return f
}

func (f *orderFixture) fillCart(t *testing.T, actor models.Actor, menuItemID int64, quantity int) {
	t.Helper()
	_, err := f.cartSvc.AddItem(context.Background(), actor, models.AddCartItemRequest{MenuItemID: menuItemID, Quantity: quantity})
	require.NoError(t, err)
}

func (f *orderFixture) placeOrder(t *testing.T) *models.Order {
	t.Helper()
	f.fillCart(t, customer, 100, 2)
	order, err := f.orderSvc.CreateOrder(context.Background(), customer, models.CreateOrderRequest{
		AddressID:     50,
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)
	return order
}

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := models.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateOrderFromCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.fillCart(t, customer, 100, 2)
	f.fillCart(t, customer, 101, 1)

	order, err := f.orderSvc.CreateOrder(ctx, customer, models.CreateOrderRequest{
		AddressID:      50,
		PaymentMethod:  models.PaymentCreditCard,
		SpecialRequest: strPtr("No onions"),
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, order.OrderNumber)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.True(t, decimal.NewFromInt(21000).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(3000).Equal(order.DeliveryFee))
	assert.True(t, decimal.NewFromInt(24000).Equal(order.TotalAmount))
	assert.Equal(t, "1 Gangnam-daero", order.DeliveryAddress)
	assert.Equal(t, "Apt 101", *order.DeliveryDetail)
	assert.Equal(t, "Seoul Kitchen", order.RestaurantName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Bibimbap", order.Items[0].MenuItemName)
	assert.True(t, decimal.NewFromInt(16000).Equal(order.Items[0].Subtotal))

	_, err = f.carts.FindByUser(ctx, customer.ID)
	assert.ErrorIs(t, err, models.ErrRecordNotFound, "cart should be consumed by the order")

	history, err := f.orders.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].FromStatus)
	assert.Equal(t, models.OrderPending, history[0].ToStatus)

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, "kim@example.com", *f.notifier.emails[0])
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	f := newOrderFixture()
	order := f.placeOrder(t)

	item := f.menus.byID[100]
	item.Price = decimal.NewFromInt(99999)
	item.Name = "Renamed"

	stored, err := f.orderSvc.GetOrder(context.Background(), customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bibimbap", stored.Items[0].MenuItemName)
	assert.True(t, decimal.NewFromInt(8000).Equal(stored.Items[0].UnitPrice))
}

func TestCreateOrderRejections(t *testing.T) {
	ctx := context.Background()
	req := models.CreateOrderRequest{AddressID: 50, PaymentMethod: models.PaymentCash}

	t.Run("empty cart", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.orderSvc.CreateOrder(ctx, customer, req)
		requireAppError(t, err, http.StatusBadRequest, models.CodeEmptyCart)
	})

	t.Run("restaurant closed", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 100, 2)
		f.restaurants.byID[10].IsOpen = false
		_, err := f.orderSvc.CreateOrder(ctx, customer, req)
		requireAppError(t, err, http.StatusBadRequest, models.CodeRestaurantClosed)
	})

	t.Run("below minimum", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 101, 1)
		_, err := f.orderSvc.CreateOrder(ctx, customer, req)
		requireAppError(t, err, http.StatusBadRequest, models.CodeBelowMinimum)
		appErr, _ := models.AsAppError(err)
		assert.Contains(t, appErr.Message, "10000.00")
	})

	t.Run("item became unavailable", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 100, 2)
		f.menus.byID[100].IsAvailable = false
		_, err := f.orderSvc.CreateOrder(ctx, customer, req)
		requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	})

	t.Run("address of another user", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 100, 2)
		_, err := f.orderSvc.CreateOrder(ctx, customer, models.CreateOrderRequest{AddressID: 51, PaymentMethod: models.PaymentCash})
		requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("missing address", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 100, 2)
		_, err := f.orderSvc.CreateOrder(ctx, customer, models.CreateOrderRequest{AddressID: 77, PaymentMethod: models.PaymentCash})
		requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)
	})

	t.Run("invalid payment method", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 100, 2)
		_, err := f.orderSvc.CreateOrder(ctx, customer, models.CreateOrderRequest{AddressID: 50, PaymentMethod: "BITCOIN"})
		requireAppError(t, err, http.StatusBadRequest, models.CodeValidation)
	})

	t.Run("nothing is persisted on rejection", func(t *testing.T) {
		f := newOrderFixture()
		f.fillCart(t, customer, 101, 1)
		_, err := f.orderSvc.CreateOrder(ctx, customer, req)
		require.Error(t, err)
		assert.Empty(t, f.orders.byID)
		cart, err := f.carts.FindByUser(ctx, customer.ID)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Empty(t, f.notifier.created)
	})
}

// cartMutatingOrders changes the cart between the service reading it and the
// store converting it.
type cartMutatingOrders struct {
	*fakeOrders
}

func (o cartMutatingOrders) CreateFromCart(ctx context.Context, order *models.Order, cartID int64, cartVersion int) error {
	o.carts.mu.Lock()
	o.carts.byUser[order.UserID].Version++
	o.carts.mu.Unlock()
	return o.fakeOrders.CreateFromCart(ctx, order, cartID, cartVersion)
}

func TestCreateOrderDetectsConcurrentCartChange(t *testing.T) {
	f := newOrderFixture()
	f.fillCart(t, customer, 100, 2)
	svc := NewOrderService(cartMutatingOrders{f.orders}, f.carts, f.addresses, f.restaurants, f.users, f.notifier)

	_, err := svc.CreateOrder(context.Background(), customer, models.CreateOrderRequest{AddressID: 50, PaymentMethod: models.PaymentCash})
	requireAppError(t, err, http.StatusConflict, models.CodeCartChanged)
	assert.Empty(t, f.orders.byID)
	assert.Empty(t, f.notifier.created)
}

func TestOrderLifecycleToCompletion(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	steps := []models.OrderStatus{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderDelivering,
		models.OrderCompleted,
	}
	for _, next := range steps {
		updated, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, next)
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, updated.Status)
	}

	final, err := f.orderSvc.GetOrder(ctx, customer, order.ID)
	require.NoError(t, err)
	require.NotNil(t, final.DeliveredAt)

	history, err := f.orderSvc.GetOrderHistory(ctx, customer, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 6)
	for i, step := range steps {
		assert.Equal(t, step, history[i+1].ToStatus)
		assert.Equal(t, owner.ID, history[i+1].ChangedBy)
	}

	require.Equal(t, 5, f.notifier.changeCount())
	assert.Equal(t, models.OrderDelivering, f.notifier.changes[4].oldStatus)
	assert.Equal(t, models.OrderCompleted, f.notifier.changes[4].order.Status)

	_, err = f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderCancelled)
	requireAppError(t, err, http.StatusBadRequest, models.CodeInvalidTransition)
}

func TestUpdateOrderStatusRules(t *testing.T) {
	ctx := context.Background()

	t.Run("skipping a step is rejected", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderReady)
		requireAppError(t, err, http.StatusBadRequest, models.CodeInvalidTransition)
		assert.Zero(t, f.notifier.changeCount())

		stored, err := f.orderSvc.GetOrder(ctx, owner, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderPending, stored.Status)

		history, err := f.orderSvc.GetOrderHistory(ctx, owner, order.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("owner of another restaurant is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, otherOwner, order.ID, models.OrderConfirmed)
		requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, customer, order.ID, models.OrderConfirmed)
		requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("admin may update any order", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		updated, err := f.orderSvc.UpdateOrderStatus(ctx, admin, order.ID, models.OrderConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.OrderConfirmed, updated.Status)
	})

	t.Run("confirmed order can still be cancelled by the restaurant", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderConfirmed)
		require.NoError(t, err)
		updated, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, updated.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, "LOST")
		requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, 404, models.OrderConfirmed)
		requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)
	})
}

func TestCompletionKeepsFirstDeliveredAt(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	for _, status := range []models.OrderStatus{models.OrderConfirmed, models.OrderPreparing, models.OrderReady, models.OrderDelivering} {
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, status)
		require.NoError(t, err)
	}

	firstDelivery := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	f.orders.mu.Lock()
	f.orders.byID[order.ID].DeliveredAt = &firstDelivery
	f.orders.mu.Unlock()

	f.orderSvc.now = func() time.Time { return firstDelivery.Add(time.Hour) }
	completed, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.DeliveredAt)
	assert.True(t, firstDelivery.Equal(*completed.DeliveredAt))

	_, err = f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderCompleted)
	requireAppError(t, err, http.StatusBadRequest, models.CodeInvalidTransition)

	stored, err := f.orderSvc.GetOrder(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, stored.Status)
	assert.True(t, firstDelivery.Equal(*stored.DeliveredAt))
}

func TestConcurrentStatusUpdatesHaveOneWinner(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	start := make(chan struct{})
	errs := make([]error, 2)
	targets := []models.OrderStatus{models.OrderConfirmed, models.OrderConfirmed}

	var wg sync.WaitGroup
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, targets[i])
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := models.AsAppError(err)
		require.True(t, ok)
		assert.Contains(t, []string{models.CodeStatusChanged, models.CodeInvalidTransition}, appErr.Code)
	}
	assert.Equal(t, 1, succeeded)

	history, err := f.orders.History(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, 1, f.notifier.changeCount())
}

// staleOrders always hands out the order as it was first read, so the
// compare-and-set in the store is what decides.
type staleOrders struct {
	*fakeOrders
	snapshot *models.Order
}

func (s staleOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	if s.snapshot != nil && s.snapshot.ID == id {
		cp := *s.snapshot
		return &cp, nil
	}
	return s.fakeOrders.FindByID(ctx, id)
}

func TestStatusUpdateLosesToConcurrentWriter(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderConfirmed)
	require.NoError(t, err)

	svc := NewOrderService(staleOrders{fakeOrders: f.orders, snapshot: order}, f.carts, f.addresses, f.restaurants, f.users, f.notifier)
	_, err = svc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderCancelled)
	requireAppError(t, err, http.StatusConflict, models.CodeStatusChanged)

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("customer cancels pending order with default reason", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		cancelled, err := f.orderSvc.CancelOrder(ctx, customer, order.ID, "  ")
		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "Cancelled by customer", *cancelled.CancellationReason)

		history, _ := f.orders.History(ctx, order.ID)
		require.Len(t, history, 2)
		assert.Equal(t, customer.ID, history[1].ChangedBy)
		assert.Equal(t, "Cancelled by customer", *history[1].Reason)
	})

	t.Run("explicit reason is kept", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		cancelled, err := f.orderSvc.CancelOrder(ctx, customer, order.ID, "Ordered by mistake")
		require.NoError(t, err)
		assert.Equal(t, "Ordered by mistake", *cancelled.CancellationReason)
	})

	t.Run("only pending orders", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.UpdateOrderStatus(ctx, owner, order.ID, models.OrderConfirmed)
		require.NoError(t, err)
		_, err = f.orderSvc.CancelOrder(ctx, customer, order.ID, "")
		requireAppError(t, err, http.StatusBadRequest, models.CodeInvalidTransition)
	})

	t.Run("someone else's order", func(t *testing.T) {
		f := newOrderFixture()
		order := f.placeOrder(t)
		_, err := f.orderSvc.CancelOrder(ctx, otherUser, order.ID, "")
		requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)
	})
}

func TestGetOrderVisibility(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	tests := []struct {
		name    string
		actor   models.Actor
		allowed bool
	}{
		{"placing customer", customer, true},
		{"restaurant owner", owner, true},
		{"admin", admin, true},
		{"other customer", otherUser, false},
		{"other owner", otherOwner, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.orderSvc.GetOrder(ctx, tt.actor, order.ID)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, order.ID, got.ID)
				return
			}
			requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)

			_, err = f.orderSvc.GetOrderHistory(ctx, tt.actor, order.ID)
			requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)
		})
	}
}

func TestListOrdersForRestaurant(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.placeOrder(t)

	orders, total, err := f.orderSvc.ListOrdersForRestaurant(ctx, owner, 10, models.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)

	_, _, err = f.orderSvc.ListOrdersForRestaurant(ctx, otherOwner, 10, models.Page{})
	requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)

	_, _, err = f.orderSvc.ListOrdersForRestaurant(ctx, customer, 10, models.Page{})
	requireAppError(t, err, http.StatusForbidden, models.CodeForbidden)

	_, _, err = f.orderSvc.ListOrdersForRestaurant(ctx, admin, 999, models.Page{})
	requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)

	mine, total, err := f.orderSvc.ListOrdersForUser(ctx, customer, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, mine, 1)

	none, total, err := f.orderSvc.ListOrdersForUser(ctx, otherUser, models.Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestCanSubscribe(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := f.placeOrder(t)

	orderChannel := fmt.Sprintf("order:%d", order.ID)
	tests := []struct {
		name    string
		actor   models.Actor
		channel string
		status  int
	}{
		{"own user channel", customer, "user:1", 0},
		{"foreign user channel", customer, "user:3", http.StatusForbidden},
		{"own restaurant", owner, "restaurant:10", 0},
		{"foreign restaurant", otherOwner, "restaurant:10", http.StatusForbidden},
		{"client on restaurant channel", customer, "restaurant:10", http.StatusForbidden},
		{"missing restaurant", owner, "restaurant:99", http.StatusNotFound},
		{"customer on own order", customer, orderChannel, 0},
		{"owner on order", owner, orderChannel, 0},
		{"other customer on order", otherUser, orderChannel, http.StatusForbidden},
		{"admin anywhere", admin, "restaurant:11", 0},
		{"malformed", customer, "orders-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.orderSvc.CanSubscribe(ctx, tt.actor, tt.channel)
			if tt.status == 0 {
				assert.NoError(t, err)
				return
			}
			appErr, ok := models.AsAppError(err)
			require.True(t, ok, "expected AppError, got %v", err)
			assert.Equal(t, tt.status, appErr.Status)
		})
	}
}
