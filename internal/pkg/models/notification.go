package models

import (
	"encoding/json"
	"time"
)

// NotificationType classifies a durable notification
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingAccepted  NotificationType = "booking_accepted"
	NotificationBookingRejected  NotificationType = "booking_rejected"
	NotificationWorkStarted      NotificationType = "work_started"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingDeleted   NotificationType = "booking_deleted"
	NotificationPaymentConfirmed NotificationType = "payment_confirmed"
	NotificationReviewReceived   NotificationType = "review_received"
)

// Notification is a persisted record of something that happened to a recipient.
// UserID may hold a customer or a worker identity.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// NotificationData is the structured payload attached to booking notifications
type NotificationData struct {
	BookingID   string        `json:"bookingId"`
	Status      BookingStatus `json:"status,omitempty"`
	ServiceName string        `json:"serviceName,omitempty"`
	WorkerID    string        `json:"workerId,omitempty"`
	Extra       any           `json:"extra,omitempty"`
}
