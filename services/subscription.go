package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"
	"food-delivery/notifications"
)

// CanSubscribe decides whether actor may listen on a notification channel.
// It returns nil when allowed and an *models.AppError otherwise.
func (s *OrderService) CanSubscribe(ctx context.Context, actor models.Actor, channel string) error {
	kind, id, err := notifications.ParseChannel(channel)
	if err != nil {
		return models.BadRequest("Unknown channel '%s'", channel)
	}
	if actor.IsAdmin() {
		return nil
	}

	switch kind {
	case notifications.ChannelUser:
		if id != actor.ID {
			return models.Forbidden("You can only subscribe to your own notifications")
		}
		return nil
	case notifications.ChannelRestaurant:
		if actor.Role != models.RoleRestaurantOwner {
			return models.Forbidden("Only restaurant owners and admins can subscribe to restaurant channels")
		}
		restaurant, err := s.restaurants.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				return models.NotFound("Restaurant not found")
			}
			return fmt.Errorf("load restaurant: %w", err)
		}
		if restaurant.OwnerID != actor.ID {
			return models.Forbidden("You are not the owner of restaurant %d", id)
		}
		return nil
	case notifications.ChannelOrder:
		_, err := s.GetOrder(ctx, actor, id)
		return err
	}
	return models.BadRequest("Unknown channel '%s'", channel)
}
