package constants

// NATS Subjects
const (
	// Real-time channel events fanned out to every instance's socket hub
	SubjectBookingChannel = "booking.channel"

	// Worker bookings cache invalidation broadcast
	SubjectCacheInvalidate = "booking.cache.invalidate"
)
