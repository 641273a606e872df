package constants

// Redis key formats
const (
	KeyWorkerBookings      = "worker:bookings:%s:%s"    // Format: worker:bookings:{worker_id}:{status}
	KeyWorkerBookingsIndex = "worker:bookings:%s:index" // Format: worker:bookings:{worker_id}:index
	KeyWorkerBookingsGen   = "worker:bookings:%s:gen"   // Format: worker:bookings:{worker_id}:gen
)

// StatusFilterAll is the cache key segment used when no status filter is given
const StatusFilterAll = "all"
