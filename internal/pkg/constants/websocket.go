package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Booking events
	EventBookingRequest       = "booking:request"
	EventBookingCreated       = "booking:created"
	EventBookingAccepted      = "booking:accepted"
	EventBookingRejected      = "booking:rejected"
	EventBookingUpdated       = "booking:updated"
	EventBookingCancelled     = "booking:cancelled"
	EventBookingStatusUpdated = "booking:status_updated"

	// Payment and reward events
	EventPaymentStatusUpdated      = "payment:status_updated"
	EventRewardPointsUpdated       = "reward:points_updated"
	EventWorkerRewardPointsUpdated = "worker:reward_points_updated"
	EventWorkerStatsUpdated        = "worker:stats_updated"

	// Durable notification announcements
	EventNotificationNew = "notification:new"
)

// WebSocket error codes
const (
	ErrorInvalidFormat = "invalid_format"
	ErrorUnknownEvent  = "unknown_event"
)
