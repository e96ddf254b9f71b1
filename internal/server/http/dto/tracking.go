package dto

import "time"

// VerificationResponse is the minimal payload returned when the access guard
// rejects the supplied credentials. It discloses nothing beyond the display
// order number.
type VerificationResponse struct {
	OrderNumber          string `json:"orderNumber"`
	RequiresVerification bool   `json:"requiresVerification"`
	Message              string `json:"message"`
}

// StatusInfoResponse describes the current timeline step.
type StatusInfoResponse struct {
	Step  int    `json:"step"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// TimelineEntryResponse is one annotated step of the progress timeline.
type TimelineEntryResponse struct {
	Status    string `json:"status"`
	Step      int    `json:"step"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// TrackingAddressResponse is the delivery address slice of the tracking view.
type TrackingAddressResponse struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	PLZ         string `json:"plz"`
	City        string `json:"city"`
}

// TrackingItemResponse is one order item with its snapshot unit price.
type TrackingItemResponse struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TrackingResponse is the full payload for a verified tracking request.
type TrackingResponse struct {
	Verified      bool                     `json:"verified"`
	OrderNumber   string                   `json:"orderNumber"`
	Status        string                   `json:"status"`
	StatusInfo    StatusInfoResponse       `json:"statusInfo"`
	Total         float64                  `json:"total"`
	DeliveryFee   float64                  `json:"deliveryFee"`
	Address       *TrackingAddressResponse `json:"address,omitempty"`
	CustomerName  string                   `json:"customerName"`
	Items         []TrackingItemResponse   `json:"items"`
	CreatedAt     time.Time                `json:"createdAt"`
	ScheduledTime string                   `json:"scheduledTime,omitempty"`
	Timeline      []TimelineEntryResponse  `json:"timeline"`
}
