package notifications

import (
	"fmt"
	"time"

	"food-delivery/models"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindOrderCreated    Kind = "ORDER_CREATED"
	KindOrderConfirmed  Kind = "ORDER_CONFIRMED"
	KindOrderPreparing  Kind = "ORDER_PREPARING"
	KindOrderReady      Kind = "ORDER_READY"
	KindOrderDelivering Kind = "ORDER_DELIVERING"
	KindOrderCompleted  Kind = "ORDER_COMPLETED"
	KindOrderCancelled  Kind = "ORDER_CANCELLED"
)

const (
	TitleNewOrder      = "New Order Received"
	TitleOrderPlaced   = "Order Placed Successfully"
	TitleStatusUpdated = "Order Status Updated"
)

// Notification is the payload published on every channel.
type Notification struct {
	Kind           Kind                `json:"kind"`
	Title          string              `json:"title"`
	Message        string              `json:"message"`
	OrderID        int64               `json:"order_id"`
	OrderNumber    string              `json:"order_number"`
	OldStatus      *models.OrderStatus `json:"old_status,omitempty"`
	NewStatus      *models.OrderStatus `json:"new_status,omitempty"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	RestaurantID   int64               `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	Timestamp      time.Time           `json:"timestamp"`
}

type statusTemplate struct {
	kind    Kind
	message string
}

// statusTemplates maps every order status to its notification kind and
// message. Messages take the order number.
var statusTemplates = map[models.OrderStatus]statusTemplate{
	models.OrderPending:    {KindOrderCreated, "New order #%s has been placed"},
	models.OrderConfirmed:  {KindOrderConfirmed, "Order #%s has been confirmed by the restaurant"},
	models.OrderPreparing:  {KindOrderPreparing, "Order #%s is being prepared"},
	models.OrderReady:      {KindOrderReady, "Order #%s is ready for pickup/delivery"},
	models.OrderDelivering: {KindOrderDelivering, "Order #%s is out for delivery"},
	models.OrderCompleted:  {KindOrderCompleted, "Order #%s has been delivered successfully"},
	models.OrderCancelled:  {KindOrderCancelled, "Order #%s has been cancelled"},
}

// KindFor returns the notification kind of a status.
func KindFor(status models.OrderStatus) Kind {
	if t, ok := statusTemplates[status]; ok {
		return t.kind
	}
	return Kind("ORDER_" + string(status))
}

// MessageFor renders the human readable message of a status.
func MessageFor(status models.OrderStatus, orderNumber string) string {
	if t, ok := statusTemplates[status]; ok {
		return fmt.Sprintf(t.message, orderNumber)
	}
	return fmt.Sprintf("Order #%s status changed to %s", orderNumber, status)
}

func base(order *models.Order, at time.Time) Notification {
	return Notification{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		TotalAmount:    order.TotalAmount,
		RestaurantID:   order.RestaurantID,
		RestaurantName: order.RestaurantName,
		Timestamp:      at,
	}
}

// Delivery is one notification bound to its channel.
type Delivery struct {
	Channel      string
	Notification Notification
}

// OrderCreatedDeliveries builds the fan-out for a newly placed order: the
// restaurant and order channels get the staff-facing message, the customer
// gets a confirmation.
func OrderCreatedDeliveries(order *models.Order, at time.Time) []Delivery {
	status := order.Status

	staff := base(order, at)
	staff.Kind = KindOrderCreated
	staff.Title = TitleNewOrder
	staff.Message = MessageFor(models.OrderPending, order.OrderNumber)
	staff.NewStatus = &status

	customer := staff
	customer.Title = TitleOrderPlaced
	customer.Message = fmt.Sprintf("Your order #%s has been placed successfully", order.OrderNumber)

	return []Delivery{
		{Channel: RestaurantChannel(order.RestaurantID), Notification: staff},
		{Channel: OrderChannel(order.ID), Notification: staff},
		{Channel: UserChannel(order.UserID), Notification: customer},
	}
}

// StatusChangedDeliveries builds the same status update for all three channels.
func StatusChangedDeliveries(order *models.Order, oldStatus models.OrderStatus, at time.Time) []Delivery {
	oldS, newS := oldStatus, order.Status

	n := base(order, at)
	n.Kind = KindFor(newS)
	n.Title = TitleStatusUpdated
	n.Message = MessageFor(newS, order.OrderNumber)
	n.OldStatus = &oldS
	n.NewStatus = &newS

	return []Delivery{
		{Channel: RestaurantChannel(order.RestaurantID), Notification: n},
		{Channel: OrderChannel(order.ID), Notification: n},
		{Channel: UserChannel(order.UserID), Notification: n},
	}
}
