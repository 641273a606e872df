package models

import "time"

// Actor is the authenticated caller of a lifecycle operation
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsUser reports whether the actor is the customer with the given id
func (a Actor) IsUser(id string) bool {
	return a.Role == RoleUser && a.ID != "" && a.ID == id
}

// IsWorker reports whether the actor is the worker with the given id
func (a Actor) IsWorker(id string) bool {
	return a.Role == RoleWorker && a.ID != "" && a.ID == id
}

// CreateBookingRequest is the customer input for a new booking
type CreateBookingRequest struct {
	ServiceID        string        `json:"serviceId"`
	ServiceName      string        `json:"serviceName"`
	ServiceCategory  string        `json:"serviceCategory"`
	Description      string        `json:"description"`
	Images           []string      `json:"images"`
	Address          string        `json:"address"`
	Coordinates      *Coordinates  `json:"coordinates"`
	ScheduledDate    *time.Time    `json:"scheduledDate"`
	Price            float64       `json:"price"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	RewardPointsUsed int           `json:"rewardPointsUsed"`
	DiscountAmount   float64       `json:"discountAmount"`
	FinalAmount      float64       `json:"finalAmount"`
}

// StatusUpdateRequest moves an accepted booking forward
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status"`
}

// CancelRequest carries the optional cancellation reason
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ReviewRequest rates a completed booking
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// OnlinePaymentRequest records an automatic online payment
type OnlinePaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

// LocationUpdateRequest is a worker position report
type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AvailabilityRequest toggles whether a worker receives dispatches
type AvailabilityRequest struct {
	IsActive bool `json:"isActive"`
}

// BookingListFilter narrows booking listings. An empty Status lists all.
type BookingListFilter struct {
	Status BookingStatus `json:"status,omitempty" query:"status"`
}

// NotificationListFilter narrows notification listings
type NotificationListFilter struct {
	UnreadOnly bool `json:"unreadOnly" query:"unread"`
	Limit      int  `json:"limit" query:"limit"`
}

// PaymentConfirmation is the outcome of a payment confirmation call
type PaymentConfirmation struct {
	Booking *Booking `json:"booking"`
	Settled bool     `json:"settled"`
}
