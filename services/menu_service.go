package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"food-delivery/models"

	log "github.com/sirupsen/logrus"
)

type MenuService struct {
	menus       MenuStore
	restaurants RestaurantStore
	cache       MenuCache
	uploader    ImageUploader
}

func NewMenuService(menus MenuStore, restaurants RestaurantStore, cache MenuCache, uploader ImageUploader) *MenuService {
	return &MenuService{
		menus:       menus,
		restaurants: restaurants,
		cache:       cache,
		uploader:    uploader,
	}
}

// GetRestaurantMenu returns available items grouped by menu category,
// served from the cache when possible.
func (s *MenuService) GetRestaurantMenu(ctx context.Context, restaurantID int64) (*models.RestaurantMenu, error) {
	if menu, ok := s.cache.GetMenu(ctx, restaurantID); ok {
		return menu, nil
	}

	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	items, err := s.menus.ListByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	menu := models.GroupMenu(restaurant, items)
	s.cache.SetMenu(ctx, menu)
	return menu, nil
}

func (s *MenuService) ListItems(ctx context.Context, restaurantID int64) ([]models.MenuItem, error) {
	if _, err := s.loadRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.menus.ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *MenuService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := s.menus.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Menu item not found")
		}
		return nil, fmt.Errorf("load menu item: %w", err)
	}
	return item, nil
}

func (s *MenuService) CreateItem(ctx context.Context, actor models.Actor, restaurantID int64, req models.MenuItemRequest) (*models.MenuItem, error) {
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, restaurant) {
		return nil, models.Forbidden("You are not the owner of this restaurant")
	}
	if err := validateMenuPrices(req); err != nil {
		return nil, err
	}

	item := &models.MenuItem{RestaurantID: restaurant.ID, IsAvailable: true}
	applyMenuItemRequest(item, req)
	if err := s.menus.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.cache.InvalidateMenu(ctx, restaurant.ID)
	log.WithFields(log.Fields{"menu_item_id": item.ID, "restaurant_id": restaurant.ID}).Info("Menu item created")
	return item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, actor models.Actor, id int64, req models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.managedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateMenuPrices(req); err != nil {
		return nil, err
	}

	applyMenuItemRequest(item, req)
	if err := s.menus.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	s.cache.InvalidateMenu(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, actor models.Actor, id int64, available bool) (*models.MenuItem, error) {
	item, err := s.managedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.menus.UpdateAvailability(ctx, id, available); err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}
	item.IsAvailable = available
	s.cache.InvalidateMenu(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, actor models.Actor, id int64) error {
	item, err := s.managedItem(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.menus.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	s.cache.InvalidateMenu(ctx, item.RestaurantID)
	return nil
}

func (s *MenuService) UploadImage(ctx context.Context, actor models.Actor, id int64, file io.Reader, filename string) (*models.MenuItem, error) {
	if s.uploader == nil {
		return nil, models.BadRequest("Image upload is not configured")
	}
	item, err := s.managedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.UploadImage(ctx, file, filename, fmt.Sprintf("restaurants/%d/menu", item.RestaurantID))
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := s.menus.UpdateImage(ctx, id, url); err != nil {
		return nil, fmt.Errorf("save image url: %w", err)
	}
	item.ImageURL = &url
	s.cache.InvalidateMenu(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) managedItem(ctx context.Context, actor models.Actor, id int64) (*models.MenuItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.loadRestaurant(ctx, item.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, restaurant) {
		return nil, models.Forbidden("You are not the owner of this restaurant")
	}
	return item, nil
}

func (s *MenuService) loadRestaurant(ctx context.Context, id int64) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return restaurant, nil
}

func validateMenuPrices(req models.MenuItemRequest) error {
	if !req.Price.IsPositive() {
		return models.BadRequest("price must be greater than 0").WithCode(models.CodeValidation)
	}
	for _, opt := range req.Options {
		if opt.Price.IsNegative() {
			return models.BadRequest("option price cannot be negative").WithCode(models.CodeValidation)
		}
	}
	return nil
}

func applyMenuItemRequest(item *models.MenuItem, req models.MenuItemRequest) {
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	item.SpicyLevel = req.SpicyLevel
	item.SortOrder = req.SortOrder
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	item.Options = make([]models.MenuItemOption, 0, len(req.Options))
	for _, opt := range req.Options {
		item.Options = append(item.Options, models.MenuItemOption{
			Name:  opt.Name,
			Price: opt.Price,
			Type:  opt.Type,
		})
	}
}
