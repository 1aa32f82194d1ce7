package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// OrderService owns the order lifecycle: cart conversion, status transitions
// and role-scoped visibility.
type OrderService struct {
	orders      OrderStore
	carts       CartStore
	addresses   AddressStore
	restaurants RestaurantStore
	users       UserStore
	notifier    Notifier
	now         func() time.Time
}

func NewOrderService(orders OrderStore, carts CartStore, addresses AddressStore, restaurants RestaurantStore, users UserStore, notifier Notifier) *OrderService {
	return &OrderService{
		orders:      orders,
		carts:       carts,
		addresses:   addresses,
		restaurants: restaurants,
		users:       users,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, actor models.Actor, req models.CreateOrderRequest) (*models.Order, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, actor.ID)
	if err != nil && !errors.Is(err, models.ErrRecordNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, models.BadRequest("Cart is empty").WithCode(models.CodeEmptyCart)
	}

	restaurant, err := s.restaurants.FindByID(ctx, cart.RestaurantID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	if !restaurant.IsOpen || !restaurant.IsActive {
		return nil, models.BadRequest("Restaurant is currently closed").WithCode(models.CodeRestaurantClosed)
	}

	for _, item := range cart.Items {
		if !item.IsAvailable {
			return nil, models.BadRequest("Menu item '%s' is no longer available", item.MenuItemName)
		}
	}

	subtotal := cart.Subtotal()
	if subtotal.LessThan(restaurant.MinOrderAmount) {
		return nil, models.BadRequest(
			"Minimum order amount is %s, current subtotal is %s",
			restaurant.MinOrderAmount.StringFixed(2), subtotal.StringFixed(2),
		).WithCode(models.CodeBelowMinimum)
	}

	address, err := s.addresses.FindByID(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Address not found")
		}
		return nil, fmt.Errorf("load address: %w", err)
	}
	if address.UserID != actor.ID {
		return nil, models.Forbidden("Address does not belong to you")
	}

	now := s.now()
	taxes := decimal.Zero
	discount := decimal.Zero
	addressID := address.ID
	order := &models.Order{
		OrderNumber:           generateOrderNumber(now),
		UserID:                actor.ID,
		RestaurantID:          restaurant.ID,
		RestaurantName:        restaurant.Name,
		RestaurantOwnerID:     restaurant.OwnerID,
		AddressID:             &addressID,
		DeliveryAddress:       address.Address,
		DeliveryDetail:        address.DetailAddress,
		DeliveryNote:          address.Note,
		Status:                models.OrderPending,
		Subtotal:              subtotal,
		DeliveryFee:           restaurant.DeliveryFee,
		Taxes:                 taxes,
		DiscountAmount:        discount,
		TotalAmount:           models.OrderTotal(subtotal, restaurant.DeliveryFee, taxes, discount),
		PaymentMethod:         req.PaymentMethod,
		PaymentStatus:         models.PaymentPending,
		SpecialRequest:        req.SpecialRequest,
		EstimatedDeliveryTime: restaurant.DeliveryETA(now),
		Items:                 snapshotItems(cart.Items),
	}

	if err := s.orders.CreateFromCart(ctx, order, cart.ID, cart.Version); err != nil {
		if errors.Is(err, models.ErrCartChanged) {
			return nil, models.Conflict("Cart changed while the order was being placed, please review it and try again").WithCode(models.CodeCartChanged)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.WithFields(log.Fields{
		"order_id":      order.ID,
		"order_number":  order.OrderNumber,
		"user_id":       actor.ID,
		"restaurant_id": restaurant.ID,
		"total":         order.TotalAmount.StringFixed(2),
	}).Info("Order created")

	s.notifier.OrderCreated(order, s.customerEmail(ctx, actor.ID))
	return order, nil
}

// UpdateOrderStatus moves an order along the lifecycle on behalf of the
// restaurant owner or an admin.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID int64, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, models.BadRequest("Unknown order status '%s'", target)
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleRestaurantOwner:
		if order.RestaurantOwnerID != actor.ID {
			return nil, models.Forbidden("You can only update orders of your own restaurants")
		}
	default:
		return nil, models.Forbidden("Only restaurant owners and admins can update order status")
	}

	return s.transition(ctx, actor, order, target, nil)
}

// CancelOrder lets the customer withdraw an order that has not been
// confirmed yet.
func (s *OrderService) CancelOrder(ctx context.Context, actor models.Actor, orderID int64, reason string) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, models.Forbidden("You can only cancel your own orders")
	}
	if order.Status != models.OrderPending {
		return nil, models.BadRequest("Order can only be cancelled while pending, current status is %s", order.Status).WithCode(models.CodeInvalidTransition)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}
	return s.transition(ctx, actor, order, models.OrderCancelled, &reason)
}

func (s *OrderService) transition(ctx context.Context, actor models.Actor, order *models.Order, target models.OrderStatus, reason *string) (*models.Order, error) {
	from := order.Status
	if !from.CanTransitionTo(target) {
		return nil, models.BadRequest("Cannot change order status from %s to %s", from, target).WithCode(models.CodeInvalidTransition)
	}

	change := models.StatusChange{
		OrderID: order.ID,
		From:    from,
		To:      target,
		ActorID: actor.ID,
		Reason:  reason,
	}
	if target == models.OrderCompleted {
		now := s.now()
		change.DeliveredAt = &now
	}

	updated, err := s.orders.UpdateStatus(ctx, change)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !updated {
		return nil, models.Conflict("Order status was changed by another request, reload the order and try again").WithCode(models.CodeStatusChanged)
	}

	fresh, err := s.findOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":   order.ID,
		"old_status": from,
		"new_status": target,
		"actor_id":   actor.ID,
	}).Info("Order status updated")

	s.notifier.OrderStatusChanged(fresh, from)
	return fresh, nil
}

// GetOrder applies the visibility rule: admins see every order, clients
// their own, restaurant owners those of their restaurants.
func (s *OrderService) GetOrder(ctx context.Context, actor models.Actor, orderID int64) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, order) {
		return nil, models.Forbidden("You do not have access to this order")
	}
	return order, nil
}

func (s *OrderService) GetOrderHistory(ctx context.Context, actor models.Actor, orderID int64) ([]models.OrderStatusHistory, error) {
	if _, err := s.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	history, err := s.orders.History(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	return history, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, actor models.Actor, page models.Page) ([]models.Order, int, error) {
	orders, total, err := s.orders.ListByUser(ctx, actor.ID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("list user orders: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) ListOrdersForRestaurant(ctx context.Context, actor models.Actor, restaurantID int64, page models.Page) ([]models.Order, int, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, 0, models.NotFound("Restaurant not found")
		}
		return nil, 0, fmt.Errorf("load restaurant: %w", err)
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleRestaurantOwner:
		if restaurant.OwnerID != actor.ID {
			return nil, 0, models.Forbidden("You can only view orders of your own restaurants")
		}
	default:
		return nil, 0, models.Forbidden("Only restaurant owners and admins can view restaurant orders")
	}

	orders, total, err := s.orders.ListByRestaurant(ctx, restaurantID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurant orders: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("Order not found")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

func (s *OrderService) customerEmail(ctx context.Context, userID int64) *string {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Could not load customer for order email")
		return nil
	}
	return user.Email
}

func canView(actor models.Actor, order *models.Order) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return order.UserID == actor.ID
	case models.RoleRestaurantOwner:
		return order.RestaurantOwnerID == actor.ID
	}
	return false
}

func snapshotItems(lines []models.CartItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		menuItemID := line.MenuItemID
		items = append(items, models.OrderItem{
			MenuItemID:      &menuItemID,
			MenuItemName:    line.MenuItemName,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			SelectedOptions: line.SelectedOptions,
			Subtotal:        line.Subtotal(),
		})
	}
	return items
}

// generateOrderNumber formats ORD-YYYYMMDD-XXXXXXXX with a random suffix.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
