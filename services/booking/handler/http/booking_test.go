package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/middleware"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/internal/utils"
	"github.com/piresc/tukang/services/booking"
	"github.com/piresc/tukang/services/booking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer = models.Actor{ID: "u-1", Role: models.RoleUser}
	worker   = models.Actor{ID: "w-1", Role: models.RoleWorker}
)

func setupHandlerTest(t *testing.T) (*BookingHandler, *mocks.MockBookingUC) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockBookingUC(ctrl)
	return NewBookingHandler(uc), uc
}

// newContext builds an echo context for the given caller. An empty actor
// leaves the request unauthenticated.
func newContext(method, target, body string, caller models.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller.ID != "" {
		c.Set(middleware.ContextUserID, caller.ID)
		c.Set(middleware.ContextUserRole, caller.Role)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		caller     models.Actor
		body       string
		mockSetup  func(*mocks.MockBookingUC)
		wantStatus int
		wantKind   string
	}{
		{
			name:   "created",
			caller: customer,
			body:   `{"serviceName":"Door repair","serviceCategory":"carpenter","address":"Jl. Sudirman 1","coordinates":{"latitude":-6.2,"longitude":106.8},"price":250}`,
			mockSetup: func(uc *mocks.MockBookingUC) {
				uc.EXPECT().CreateBooking(gomock.Any(), customer, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ models.Actor, req *models.CreateBookingRequest) (*models.Booking, error) {
						return &models.Booking{ID: "b-1", ServiceName: req.ServiceName, Status: models.BookingStatusPending}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unauthenticated",
			body:       `{}`,
			mockSetup:  func(*mocks.MockBookingUC) {},
			wantStatus: http.StatusUnauthorized,
			wantKind:   "unauthenticated",
		},
		{
			name:       "malformed body",
			caller:     customer,
			body:       `{"price":`,
			mockSetup:  func(*mocks.MockBookingUC) {},
			wantStatus: http.StatusBadRequest,
			wantKind:   booking.KindValidation,
		},
		{
			name:   "validation error",
			caller: customer,
			body:   `{}`,
			mockSetup: func(uc *mocks.MockBookingUC) {
				uc.EXPECT().CreateBooking(gomock.Any(), customer, gomock.Any()).
					Return(nil, booking.Validationf("serviceName is required"))
			},
			wantStatus: http.StatusBadRequest,
			wantKind:   booking.KindValidation,
		},
		{
			name:   "internal error is hidden",
			caller: customer,
			body:   `{}`,
			mockSetup: func(uc *mocks.MockBookingUC) {
				uc.EXPECT().CreateBooking(gomock.Any(), customer, gomock.Any()).
					Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantKind:   booking.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupHandlerTest(t)
			tt.mockSetup(uc)
			c, rec := newContext(http.MethodPost, "/api/v1/bookings", tt.body, tt.caller)

			err := h.CreateBooking(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantKind != "" {
				resp := decodeError(t, rec)
				assert.Equal(t, tt.wantKind, resp.Kind)
				assert.NotContains(t, resp.Error, "connection reset")
			}
		})
	}
}

func TestAcceptBooking_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "race lost", err: booking.ErrAcceptRaceLost, wantStatus: http.StatusConflict, wantKind: booking.KindConflict},
		{name: "missing", err: booking.ErrNotFound, wantStatus: http.StatusNotFound, wantKind: booking.KindNotFound},
		{name: "not a worker", err: booking.ErrUnauthorized, wantStatus: http.StatusForbidden, wantKind: booking.KindUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupHandlerTest(t)
			uc.EXPECT().AcceptBooking(gomock.Any(), worker, "b-1").Return(nil, tt.err)
			c, rec := newContext(http.MethodPost, "/", "", worker)

			require.NoError(t, h.AcceptBooking(withID(c, "b-1")))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
		})
	}
}

func TestAcceptBooking_Success(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().AcceptBooking(gomock.Any(), worker, "b-1").
		Return(&models.Booking{ID: "b-1", WorkerID: "w-1", Status: models.BookingStatusAccepted}, nil)
	c, rec := newContext(http.MethodPost, "/", "", worker)

	require.NoError(t, h.AcceptBooking(withID(c, "b-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool           `json:"success"`
		Data    models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "w-1", resp.Data.WorkerID)
}

func TestListBookings_BindsStatusFilter(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().ListUserBookings(gomock.Any(), customer, models.BookingListFilter{Status: models.BookingStatusCompleted}).
		Return([]*models.Booking{{ID: "b-1"}}, nil)
	c, rec := newContext(http.MethodGet, "/api/v1/bookings?status=completed", "", customer)

	require.NoError(t, h.ListBookings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListWorkerBookings(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().ListWorkerBookings(gomock.Any(), worker, models.BookingListFilter{}).Return([]*models.Booking{}, nil)
	c, rec := newContext(http.MethodGet, "/api/v1/workers/me/bookings", "", worker)

	require.NoError(t, h.ListWorkerBookings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().UpdateStatus(gomock.Any(), worker, "b-1", &models.StatusUpdateRequest{Status: models.BookingStatusInProgress}).
		Return(&models.Booking{ID: "b-1", Status: models.BookingStatusInProgress}, nil)
	c, rec := newContext(http.MethodPatch, "/", `{"status":"in_progress"}`, worker)

	require.NoError(t, h.UpdateStatus(withID(c, "b-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelBooking_EmptyBody(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().CancelBooking(gomock.Any(), customer, "b-1", &models.CancelRequest{}).
		Return(&models.Booking{ID: "b-1", Status: models.BookingStatusCancelled}, nil)
	c, rec := newContext(http.MethodPost, "/", "", customer)

	require.NoError(t, h.CancelBooking(withID(c, "b-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBooking_IllegalState(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().DeleteBooking(gomock.Any(), customer, "b-1").Return(booking.ErrIllegalTransition)
	c, rec := newContext(http.MethodDelete, "/", "", customer)

	require.NoError(t, h.DeleteBooking(withID(c, "b-1")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, booking.KindConflict, decodeError(t, rec).Kind)
}

func TestSubmitReview(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().SubmitReview(gomock.Any(), customer, "b-1", &models.ReviewRequest{Rating: 5, Review: "great"}).
		Return(&models.Booking{ID: "b-1"}, nil)
	c, rec := newContext(http.MethodPost, "/", `{"rating":5,"review":"great"}`, customer)

	require.NoError(t, h.SubmitReview(withID(c, "b-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConfirmPayment_ReportsSettlement(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().ConfirmPayment(gomock.Any(), worker, "b-1").
		Return(&models.PaymentConfirmation{Booking: &models.Booking{ID: "b-1"}, Settled: true}, nil)
	c, rec := newContext(http.MethodPost, "/", "", worker)

	require.NoError(t, h.ConfirmPayment(withID(c, "b-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Payment completed", resp.Message)
}

func TestProcessOnlinePayment(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().ProcessOnlinePayment(gomock.Any(), customer, "b-1", &models.OnlinePaymentRequest{PaymentID: "pay-1"}).
		Return(nil, booking.ErrAlreadyConfirmed)
	c, rec := newContext(http.MethodPost, "/", `{"paymentId":"pay-1"}`, customer)

	require.NoError(t, h.ProcessOnlinePayment(withID(c, "b-1")))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWorkerEndpoints(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().UpdateWorkerLocation(gomock.Any(), worker, &models.LocationUpdateRequest{Latitude: -6.2, Longitude: 106.8}).Return(nil)
	uc.EXPECT().SetWorkerAvailability(gomock.Any(), worker, &models.AvailabilityRequest{IsActive: true}).
		Return(&models.Worker{ID: "w-1", IsActive: true}, nil)

	c, rec := newContext(http.MethodPut, "/", `{"latitude":-6.2,"longitude":106.8}`, worker)
	require.NoError(t, h.UpdateWorkerLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPut, "/", `{"isActive":true}`, worker)
	require.NoError(t, h.SetWorkerAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	h, uc := setupHandlerTest(t)
	uc.EXPECT().ListNotifications(gomock.Any(), customer, models.NotificationListFilter{UnreadOnly: true, Limit: 5}).
		Return([]*models.Notification{}, nil)
	uc.EXPECT().MarkNotificationRead(gomock.Any(), customer, "n-1").Return(booking.ErrNotFound)
	uc.EXPECT().MarkAllNotificationsRead(gomock.Any(), customer).Return(int64(3), nil)

	c, rec := newContext(http.MethodGet, "/api/v1/notifications?unread=true&limit=5", "", customer)
	require.NoError(t, h.ListNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPost, "/", "", customer)
	require.NoError(t, h.MarkNotificationRead(withID(c, "n-1")))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodPost, "/", "", customer)
	require.NoError(t, h.MarkAllNotificationsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":3`)
}
