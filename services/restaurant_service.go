package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"

	log "github.com/sirupsen/logrus"
)

type RestaurantService struct {
	restaurants RestaurantStore
	users       UserStore
	cache       MenuCache
}

func NewRestaurantService(restaurants RestaurantStore, users UserStore, cache MenuCache) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, users: users, cache: cache}
}

func (s *RestaurantService) List(ctx context.Context, filter models.RestaurantFilter, page models.Page) ([]models.Restaurant, int, error) {
	restaurants, total, err := s.restaurants.List(ctx, filter, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, total, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *RestaurantService) ListMine(ctx context.Context, actor models.Actor) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list owner restaurants: %w", err)
	}
	return restaurants, nil
}

// Create registers a restaurant for an owner account.
func (s *RestaurantService) Create(ctx context.Context, req models.RestaurantRequest) (*models.Restaurant, error) {
	if req.OwnerID == 0 {
		return nil, models.BadRequest("owner_id is required")
	}
	owner, err := s.users.FindByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Owner not found")
		}
		return nil, fmt.Errorf("load owner: %w", err)
	}
	if owner.Role != models.RoleRestaurantOwner {
		return nil, models.BadRequest("User %d is not a restaurant owner", owner.ID)
	}
	if err := validateMoney(req); err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{
		OwnerID:  owner.ID,
		IsOpen:   true,
		IsActive: true,
	}
	applyRestaurantRequest(restaurant, req)

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	log.WithFields(log.Fields{"restaurant_id": restaurant.ID, "owner_id": owner.ID}).Info("Restaurant created")
	return restaurant, nil
}

func (s *RestaurantService) Update(ctx context.Context, actor models.Actor, id int64, req models.RestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.ownedRestaurant(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateMoney(req); err != nil {
		return nil, err
	}

	applyRestaurantRequest(restaurant, req)
	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	s.cache.InvalidateMenu(ctx, restaurant.ID)
	return restaurant, nil
}

// UpdateStatus opens or closes a restaurant for new orders.
func (s *RestaurantService) UpdateStatus(ctx context.Context, actor models.Actor, id int64, isOpen bool) (*models.Restaurant, error) {
	restaurant, err := s.ownedRestaurant(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.restaurants.UpdateOpen(ctx, id, isOpen); err != nil {
		return nil, fmt.Errorf("update restaurant status: %w", err)
	}
	restaurant.IsOpen = isOpen
	s.cache.InvalidateMenu(ctx, restaurant.ID)

	log.WithFields(log.Fields{"restaurant_id": id, "is_open": isOpen}).Info("Restaurant status changed")
	return restaurant, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if err := s.restaurants.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.NotFound("Restaurant not found")
		}
		return fmt.Errorf("delete restaurant: %w", err)
	}
	s.cache.InvalidateMenu(ctx, id)
	return nil
}

// ownedRestaurant loads a restaurant the actor may manage: its owner or an admin.
func (s *RestaurantService) ownedRestaurant(ctx context.Context, actor models.Actor, id int64) (*models.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, restaurant) {
		return nil, models.Forbidden("You are not the owner of this restaurant")
	}
	return restaurant, nil
}

func canManage(actor models.Actor, r *models.Restaurant) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == models.RoleRestaurantOwner && r.OwnerID == actor.ID
}

func validateMoney(req models.RestaurantRequest) error {
	if req.MinOrderAmount.IsNegative() {
		return models.BadRequest("min_order_amount cannot be negative").WithCode(models.CodeValidation)
	}
	if req.DeliveryFee.IsNegative() {
		return models.BadRequest("delivery_fee cannot be negative").WithCode(models.CodeValidation)
	}
	return nil
}

func applyRestaurantRequest(r *models.Restaurant, req models.RestaurantRequest) {
	r.CategoryID = req.CategoryID
	r.Name = req.Name
	r.Description = req.Description
	r.Address = req.Address
	r.City = req.City
	r.Phone = req.Phone
	r.ImageURL = req.ImageURL
	r.MinOrderAmount = req.MinOrderAmount
	r.DeliveryFee = req.DeliveryFee
	r.EstimatedDeliveryTime = req.EstimatedDeliveryTime
	r.OpeningHours = req.OpeningHours
	if req.IsOpen != nil {
		r.IsOpen = *req.IsOpen
	}
}
