package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/models"

	log "github.com/sirupsen/logrus"
)

type CartService struct {
	carts       CartStore
	menus       MenuStore
	restaurants RestaurantStore
}

func NewCartService(carts CartStore, menus MenuStore, restaurants RestaurantStore) *CartService {
	return &CartService{
		carts:       carts,
		menus:       menus,
		restaurants: restaurants,
	}
}

func (s *CartService) GetCart(ctx context.Context, actor models.Actor) (*models.CartView, error) {
	cart, err := s.carts.FindByUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.NewCartView(actor.ID, nil, nil), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	restaurant, err := s.restaurants.FindByID(ctx, cart.RestaurantID)
	if err != nil && !errors.Is(err, models.ErrRecordNotFound) {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return models.NewCartView(actor.ID, cart, restaurant), nil
}

func (s *CartService) AddItem(ctx context.Context, actor models.Actor, req models.AddCartItemRequest) (*models.CartView, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	menuItem, err := s.menus.FindByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Menu item not found")
		}
		return nil, fmt.Errorf("load menu item: %w", err)
	}
	if !menuItem.IsAvailable {
		return nil, models.BadRequest("Menu item '%s' is not available", menuItem.Name)
	}

	existing, err := s.carts.FindByUser(ctx, actor.ID)
	if err != nil && !errors.Is(err, models.ErrRecordNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !existing.IsEmpty() && existing.RestaurantID != menuItem.RestaurantID {
		return nil, differentRestaurant()
	}

	line := models.CartItem{
		MenuItemID:      menuItem.ID,
		Quantity:        req.Quantity,
		SelectedOptions: normalizeOptions(req.SelectedOptions),
	}
	if err := s.carts.AddItem(ctx, actor.ID, menuItem.RestaurantID, line); err != nil {
		if errors.Is(err, models.ErrCartRestaurantMismatch) {
			return nil, differentRestaurant()
		}
		if errors.Is(err, models.ErrCartQuantityLimit) {
			return nil, quantityLimit()
		}
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":      actor.ID,
		"menu_item_id": menuItem.ID,
		"quantity":     req.Quantity,
	}).Debug("Cart item added")

	return s.GetCart(ctx, actor)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, actor models.Actor, itemID int64, quantity int) (*models.CartView, error) {
	if quantity <= 0 {
		return nil, models.BadRequest("Quantity must be greater than 0")
	}
	if quantity > models.MaxCartQuantity {
		return nil, quantityLimit()
	}
	if _, err := s.ownedItem(ctx, actor, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Cart item not found")
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return s.GetCart(ctx, actor)
}

func (s *CartService) RemoveItem(ctx context.Context, actor models.Actor, itemID int64) (*models.CartView, error) {
	if _, err := s.ownedItem(ctx, actor, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.RemoveItem(ctx, itemID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Cart item not found")
		}
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return s.GetCart(ctx, actor)
}

func (s *CartService) ClearCart(ctx context.Context, actor models.Actor) error {
	if err := s.carts.DeleteByUser(ctx, actor.ID); err != nil && !errors.Is(err, models.ErrRecordNotFound) {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *CartService) ownedItem(ctx context.Context, actor models.Actor, itemID int64) (*models.CartItem, error) {
	item, err := s.carts.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Cart item not found")
		}
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	if item.UserID != actor.ID {
		return nil, models.BadRequest("Cart item does not belong to the user")
	}
	return item, nil
}

func differentRestaurant() *models.AppError {
	return models.Conflict("Your cart contains items from a different restaurant. Clear the cart to order from this restaurant.").
		WithCode(models.CodeDifferentRestaurant)
}

func quantityLimit() *models.AppError {
	return models.BadRequest("Quantity per item cannot exceed %d", models.MaxCartQuantity).
		WithCode(models.CodeQuantityLimit)
}

func normalizeOptions(options *string) *string {
	if options == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*options)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
