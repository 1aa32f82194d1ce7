package services

import (
	"context"
	"net/http"
	"testing"

	"food-delivery/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMergesLines(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 1})
	require.NoError(t, err)
	view, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	view, err = f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 1, SelectedOptions: strPtr(" extra egg ")})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "extra egg", *view.Items[1].SelectedOptions)

	assert.Equal(t, 4, view.Summary.ItemCount)
	assert.True(t, decimal.NewFromInt(32000).Equal(view.Summary.Subtotal))
	assert.True(t, decimal.NewFromInt(35000).Equal(view.Summary.Total))
	assert.True(t, view.Summary.MeetsMinimum)
	require.NotNil(t, view.Restaurant)
	assert.Equal(t, int64(10), view.Restaurant.ID)
}

func TestCartRejectsSecondRestaurant(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.fillCart(t, customer, 100, 1)

	_, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 200, Quantity: 1})
	requireAppError(t, err, http.StatusConflict, models.CodeDifferentRestaurant)

	require.NoError(t, f.cartSvc.ClearCart(ctx, customer))
	view, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 200, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(11), view.Restaurant.ID)
}

// racingCarts lets the store report the restaurant conflict that the
// service-level check could not see yet.
type racingCarts struct {
	*fakeCarts
}

func (racingCarts) AddItem(context.Context, int64, int64, models.CartItem) error {
	return models.ErrCartRestaurantMismatch
}

func TestCartMismatchFromStore(t *testing.T) {
	f := newOrderFixture()
	svc := NewCartService(racingCarts{f.carts}, f.menus, f.restaurants)

	_, err := svc.AddItem(context.Background(), customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 1})
	requireAppError(t, err, http.StatusConflict, models.CodeDifferentRestaurant)
}

func TestCartWithoutLinesAcceptsAnyRestaurant(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.fillCart(t, customer, 100, 1)
	f.carts.dropLinesFor(100)

	view, err := f.cartSvc.GetCart(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 200, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Restaurant)
	assert.Equal(t, int64(11), view.Restaurant.ID)
}

func TestCartQuantityLimit(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.fillCart(t, customer, 100, 60)

	_, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 40})
	requireAppError(t, err, http.StatusBadRequest, models.CodeQuantityLimit)

	view, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 39})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, models.MaxCartQuantity, view.Items[0].Quantity)

	_, err = f.cartSvc.UpdateItemQuantity(ctx, customer, view.Items[0].ID, models.MaxCartQuantity+1)
	requireAppError(t, err, http.StatusBadRequest, models.CodeQuantityLimit)
}

func TestCartAddItemValidation(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 100, Quantity: 0})
	requireAppError(t, err, http.StatusBadRequest, models.CodeValidation)

	_, err = f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 999, Quantity: 1})
	requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)

	f.menus.byID[101].IsAvailable = false
	_, err = f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 101, Quantity: 1})
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
}

func TestCartUpdateAndRemove(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.fillCart(t, customer, 100, 1)
	view, err := f.cartSvc.AddItem(ctx, customer, models.AddCartItemRequest{MenuItemID: 101, Quantity: 1})
	require.NoError(t, err)
	first, second := view.Items[0].ID, view.Items[1].ID

	view, err = f.cartSvc.UpdateItemQuantity(ctx, customer, first, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity)

	_, err = f.cartSvc.UpdateItemQuantity(ctx, customer, first, 0)
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)

	_, err = f.cartSvc.UpdateItemQuantity(ctx, otherUser, first, 2)
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)

	_, err = f.cartSvc.RemoveItem(ctx, otherUser, second)
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)

	view, err = f.cartSvc.RemoveItem(ctx, customer, second)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = f.cartSvc.RemoveItem(ctx, customer, first)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.ID, "removing the last item deletes the cart")

	_, err = f.cartSvc.RemoveItem(ctx, customer, first)
	requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)
}

func TestCartVersionBumpsOnEveryMutation(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.fillCart(t, customer, 100, 1)

	cart, err := f.carts.FindByUser(ctx, customer.ID)
	require.NoError(t, err)
	before := cart.Version

	_, err = f.cartSvc.UpdateItemQuantity(ctx, customer, cart.Items[0].ID, 3)
	require.NoError(t, err)
	cart, err = f.carts.FindByUser(ctx, customer.ID)
	require.NoError(t, err)
	assert.Greater(t, cart.Version, before)
}

func TestGetCartWithoutCart(t *testing.T) {
	f := newOrderFixture()
	view, err := f.cartSvc.GetCart(context.Background(), customer)
	require.NoError(t, err)
	assert.Nil(t, view.ID)
	assert.Empty(t, view.Items)
	assert.NoError(t, f.cartSvc.ClearCart(context.Background(), customer))
}
