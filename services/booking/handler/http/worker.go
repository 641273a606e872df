package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
)

func (h *BookingHandler) UpdateWorkerLocation(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.LocationUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	if err := h.bookingUC.UpdateWorkerLocation(c.Request().Context(), caller, &req); err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Location updated", nil)
}

func (h *BookingHandler) SetWorkerAvailability(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	w, err := h.bookingUC.SetWorkerAvailability(c.Request().Context(), caller, &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Availability updated", w)
}
