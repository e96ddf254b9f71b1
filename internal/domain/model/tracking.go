package model

import "time"

// TrackingCredentials carries the optional secrets presented with a tracking
// request. Both fields may be empty; absence never grants access.
type TrackingCredentials struct {
	Token string
	Email string
}

// TrackingAddress is the delivery-address slice disclosed to a verified
// tracking request.
type TrackingAddress struct {
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
}

// TrackingItem mirrors an order item for the tracking view. UnitPrice is the
// snapshot recorded at order time.
type TrackingItem struct {
	Name      string
	ImageURL  string
	Quantity  int
	UnitPrice float64
}

// TrackingView is the full payload released once the access guard passes.
// CustomerName holds the first name only.
type TrackingView struct {
	OrderNumber   string
	Status        OrderStatus
	StatusInfo    TimelineStep
	Total         float64
	DeliveryFee   float64
	Address       *TrackingAddress
	CustomerName  string
	Items         []TrackingItem
	CreatedAt     time.Time
	ScheduledTime string
	Timeline      []TimelineEntry
}

// TrackingResult is the outcome of resolving an order reference: either the
// full view, or a minimal verification prompt that discloses nothing beyond
// the display order number.
type TrackingResult struct {
	Verified             bool
	RequiresVerification bool
	OrderNumber          string
	Message              string
	View                 *TrackingView
}

// StatusNotification pairs an order claimed for notification with its
// owner's contact data.
type StatusNotification struct {
	Order     Order
	Email     string
	FirstName string
}
