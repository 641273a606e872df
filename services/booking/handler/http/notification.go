package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
)

func (h *BookingHandler) ListNotifications(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var filter models.NotificationListFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return utils.BadRequestResponse(c, "Invalid query: "+err.Error())
	}

	list, err := h.bookingUC.ListNotifications(c.Request().Context(), caller, filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", list)
}

func (h *BookingHandler) MarkNotificationRead(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	if err := h.bookingUC.MarkNotificationRead(c.Request().Context(), caller, c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *BookingHandler) MarkAllNotificationsRead(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	n, err := h.bookingUC.MarkAllNotificationsRead(c.Request().Context(), caller)
	if err != nil {
		return errorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Notifications marked as read", map[string]int64{"updated": n})
}
