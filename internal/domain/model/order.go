package model

import (
	"fmt"
	"time"
)

// OrderStatus describes the delivery lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order describes a placed grocery order.
type Order struct {
	ID            int64
	UserID        int64
	AddressID     *int64
	Number        string
	Status        OrderStatus
	Total         float64
	DeliveryFee   float64
	AccessToken   string
	ScheduledTime string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const displayNumberPrefix = "SPEETI-"

// DisplayNumber returns the human-facing order number. Orders without a
// stored number get a synthesized "SPEETI-00042" style identifier.
func (o *Order) DisplayNumber() string {
	if o.Number != "" {
		return o.Number
	}
	return fmt.Sprintf("%s%05d", displayNumberPrefix, o.ID)
}

// OrderItem is an immutable snapshot of one purchased product. Name, image
// and unit price are copied from the catalog at checkout.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	ImageURL  string
	Quantity  int
	UnitPrice float64
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether the order may move to the given status.
// Delivered and cancelled are terminal.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// KnownStatus reports whether the value is one of the catalog statuses.
func KnownStatus(status OrderStatus) bool {
	_, ok := orderTransitions[status]
	return ok
}
