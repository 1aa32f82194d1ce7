package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderPreparing  OrderStatus = "PREPARING"
	OrderReady      OrderStatus = "READY"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderPreparing,
	OrderReady,
	OrderDelivering,
	OrderCompleted,
	OrderCancelled,
}

// orderTransitions is the complete set of allowed status changes. Statuses
// without an entry are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderPreparing, OrderCancelled},
	OrderPreparing:  {OrderReady},
	OrderReady:      {OrderDelivering},
	OrderDelivering: {OrderCompleted},
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the statuses reachable from s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderTransitions[s]...)
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentCash       PaymentMethod = "CASH"
	PaymentApplePay   PaymentMethod = "APPLE_PAY"
	PaymentGooglePay  PaymentMethod = "GOOGLE_PAY"
	PaymentNaverPay   PaymentMethod = "NAVER_PAY"
	PaymentKakaoPay   PaymentMethod = "KAKAO_PAY"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Order struct {
	ID                    int64           `json:"id"`
	OrderNumber           string          `json:"order_number"`
	UserID                int64           `json:"user_id"`
	RestaurantID          int64           `json:"restaurant_id"`
	RestaurantName        string          `json:"restaurant_name"`
	RestaurantOwnerID     int64           `json:"-"`
	AddressID             *int64          `json:"address_id,omitempty"`
	DeliveryAddress       string          `json:"delivery_address"`
	DeliveryDetail        *string         `json:"delivery_detail,omitempty"`
	DeliveryNote          *string         `json:"delivery_note,omitempty"`
	Status                OrderStatus     `json:"status"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	Taxes                 decimal.Decimal `json:"taxes"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	PaymentMethod         PaymentMethod   `json:"payment_method"`
	PaymentStatus         PaymentStatus   `json:"payment_status"`
	SpecialRequest        *string         `json:"special_request,omitempty"`
	CancellationReason    *string         `json:"cancellation_reason,omitempty"`
	EstimatedDeliveryTime time.Time       `json:"estimated_delivery_time"`
	DeliveredAt           *time.Time      `json:"delivered_at,omitempty"`
	Items                 []OrderItem     `json:"items"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// OrderTotal applies total = subtotal + deliveryFee + taxes - discount.
func OrderTotal(subtotal, deliveryFee, taxes, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Add(taxes).Sub(discount)
}

type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	MenuItemID      *int64          `json:"menu_item_id,omitempty"`
	MenuItemName    string          `json:"menu_item_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	SelectedOptions *string         `json:"selected_options,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type OrderStatusHistory struct {
	ID         int64        `json:"id"`
	OrderID    int64        `json:"order_id"`
	FromStatus *OrderStatus `json:"from_status,omitempty"`
	ToStatus   OrderStatus  `json:"to_status"`
	ChangedBy  int64        `json:"changed_by"`
	Reason     *string      `json:"reason,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// StatusChange describes one conditional status update: it only applies
// while the order is still in From.
type StatusChange struct {
	OrderID     int64
	From        OrderStatus
	To          OrderStatus
	ActorID     int64
	Reason      *string
	DeliveredAt *time.Time
}
