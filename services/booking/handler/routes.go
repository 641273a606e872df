package handler

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/middleware"
	"github.com/piresc/tukang/internal/pkg/models"
	nrpkg "github.com/piresc/tukang/internal/pkg/newrelic"
	"github.com/piresc/tukang/internal/pkg/websocket"
	"github.com/piresc/tukang/services/booking"
	httpHandler "github.com/piresc/tukang/services/booking/handler/http"
	natsHandler "github.com/piresc/tukang/services/booking/handler/nats"
)

// Handler combines all handlers for the booking service
type Handler struct {
	bookingHTTP *httpHandler.BookingHandler
	bookingNATS *natsHandler.BookingHandler
	hub         *websocket.Hub
	redis       *redis.Client
	cfg         *models.Config
}

// NewHandler creates a new combined handler. bookingNATS and redisClient may
// be nil when the service runs without NATS or Redis.
func NewHandler(
	bookingUC booking.BookingUC,
	hub *websocket.Hub,
	bookingNATS *natsHandler.BookingHandler,
	redisClient *redis.Client,
	cfg *models.Config,
) *Handler {
	return &Handler{
		bookingHTTP: httpHandler.NewBookingHandler(bookingUC),
		bookingNATS: bookingNATS,
		hub:         hub,
		redis:       redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP and socket routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.hub.HandleConnection)

	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(h.cfg.JWT))

	var createLimits []echo.MiddlewareFunc
	if h.cfg.Server.RateLimit > 0 && h.redis != nil {
		createLimits = append(createLimits, middleware.UserRateLimiter(h.cfg.Server.RateLimit, h.cfg.Server.RateLimitPeriod, h.redis))
	}

	bookings := api.Group("/bookings")
	bookings.POST("", nrpkg.TraceHandler("Booking.Create", h.bookingHTTP.CreateBooking), createLimits...)
	bookings.GET("", nrpkg.TraceHandler("Booking.List", h.bookingHTTP.ListBookings))
	bookings.GET("/:id", nrpkg.TraceHandler("Booking.Get", h.bookingHTTP.GetBooking))
	bookings.DELETE("/:id", nrpkg.TraceHandler("Booking.Delete", h.bookingHTTP.DeleteBooking))
	bookings.POST("/:id/accept", nrpkg.TraceHandler("Booking.Accept", h.bookingHTTP.AcceptBooking))
	bookings.POST("/:id/reject", nrpkg.TraceHandler("Booking.Reject", h.bookingHTTP.RejectBooking))
	bookings.PATCH("/:id/status", nrpkg.TraceHandler("Booking.UpdateStatus", h.bookingHTTP.UpdateStatus))
	bookings.POST("/:id/cancel", nrpkg.TraceHandler("Booking.Cancel", h.bookingHTTP.CancelBooking))
	bookings.POST("/:id/review", nrpkg.TraceHandler("Booking.Review", h.bookingHTTP.SubmitReview))
	bookings.POST("/:id/payment/confirm", nrpkg.TraceHandler("Booking.ConfirmPayment", h.bookingHTTP.ConfirmPayment))
	bookings.POST("/:id/payment/online", nrpkg.TraceHandler("Booking.OnlinePayment", h.bookingHTTP.ProcessOnlinePayment))

	workers := api.Group("/workers/me")
	workers.GET("/bookings", nrpkg.TraceHandler("Worker.Bookings", h.bookingHTTP.ListWorkerBookings))
	workers.PUT("/location", nrpkg.TraceHandler("Worker.Location", h.bookingHTTP.UpdateWorkerLocation))
	workers.PUT("/availability", nrpkg.TraceHandler("Worker.Availability", h.bookingHTTP.SetWorkerAvailability))

	notifications := api.Group("/notifications")
	notifications.GET("", nrpkg.TraceHandler("Notification.List", h.bookingHTTP.ListNotifications))
	notifications.POST("/read-all", nrpkg.TraceHandler("Notification.ReadAll", h.bookingHTTP.MarkAllNotificationsRead))
	notifications.POST("/:id/read", nrpkg.TraceHandler("Notification.Read", h.bookingHTTP.MarkNotificationRead))
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	if h.bookingNATS == nil {
		return nil
	}
	return h.bookingNATS.InitNATSConsumers()
}

// Close stops the NATS consumers
func (h *Handler) Close() {
	if h.bookingNATS != nil {
		h.bookingNATS.Close()
	}
}
