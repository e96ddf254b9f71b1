package dto

import "time"

// CheckoutItemRequest is one requested catalog position.
type CheckoutItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest describes the order creation payload.
type CheckoutRequest struct {
	AddressID     *int64                `json:"addressId"`
	ScheduledTime string                `json:"scheduledTime"`
	Items         []CheckoutItemRequest `json:"items"`
}

// OrderResponse describes an order in account listings.
type OrderResponse struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	DeliveryFee   float64   `json:"deliveryFee"`
	CreatedAt     time.Time `json:"createdAt"`
	ScheduledTime string    `json:"scheduledTime,omitempty"`
}

// UpdateStatusRequest carries a status transition for order management.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
