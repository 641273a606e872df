package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/middleware"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
	"github.com/piresc/tukang/services/booking"
)

// BookingHandler handles HTTP requests for booking lifecycle operations
type BookingHandler struct {
	bookingUC booking.BookingUC
}

// NewBookingHandler creates a new booking HTTP handler
func NewBookingHandler(bookingUC booking.BookingUC) *BookingHandler {
	return &BookingHandler{
		bookingUC: bookingUC,
	}
}

// actor returns the authenticated caller set by the JWT middleware
func actor(c echo.Context) (models.Actor, bool) {
	id, role, ok := middleware.Caller(c)
	return models.Actor{ID: id, Role: role}, ok
}

// errorResponse maps a lifecycle error to its status code and kind. Internal
// errors are logged and hidden from the caller.
func errorResponse(c echo.Context, err error) error {
	status := booking.HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request().Context(), "Request failed",
			logger.String("path", c.Path()),
			logger.Err(err))
		message = "internal server error"
	}
	return utils.KindErrorResponse(c, status, booking.Kind(err), message)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	b, err := h.bookingUC.CreateBooking(c.Request().Context(), caller, &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Booking created", b)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	b, err := h.bookingUC.GetBooking(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", b)
}

// ListBookings lists the caller's bookings as a customer
func (h *BookingHandler) ListBookings(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var filter models.BookingListFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return utils.BadRequestResponse(c, "Invalid query: "+err.Error())
	}

	list, err := h.bookingUC.ListUserBookings(c.Request().Context(), caller, filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", list)
}

// ListWorkerBookings lists the bookings assigned to the calling worker
func (h *BookingHandler) ListWorkerBookings(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var filter models.BookingListFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return utils.BadRequestResponse(c, "Invalid query: "+err.Error())
	}

	list, err := h.bookingUC.ListWorkerBookings(c.Request().Context(), caller, filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", list)
}

func (h *BookingHandler) AcceptBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	b, err := h.bookingUC.AcceptBooking(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking accepted", b)
}

func (h *BookingHandler) RejectBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	b, err := h.bookingUC.RejectBooking(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking rejected", b)
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	b, err := h.bookingUC.UpdateStatus(c.Request().Context(), caller, c.Param("id"), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking status updated", b)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.CancelRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		}
	}

	b, err := h.bookingUC.CancelBooking(c.Request().Context(), caller, c.Param("id"), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking cancelled", b)
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	if err := h.bookingUC.DeleteBooking(c.Request().Context(), caller, c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking deleted", nil)
}

func (h *BookingHandler) SubmitReview(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	b, err := h.bookingUC.SubmitReview(c.Request().Context(), caller, c.Param("id"), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Review submitted", b)
}

func (h *BookingHandler) ConfirmPayment(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	res, err := h.bookingUC.ConfirmPayment(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	message := "Payment confirmation recorded"
	if res.Settled {
		message = "Payment completed"
	}
	return utils.SuccessResponse(c, http.StatusOK, message, res)
}

func (h *BookingHandler) ProcessOnlinePayment(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.OnlinePaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	res, err := h.bookingUC.ProcessOnlinePayment(c.Request().Context(), caller, c.Param("id"), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment completed", res)
}
