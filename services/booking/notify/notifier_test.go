package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestNotifier(ctrl *gomock.Controller) (*Notifier, *mocks.MockNotificationRepo, *mocks.MockChannelGW) {
	repo := mocks.NewMockNotificationRepo(ctrl)
	gw := mocks.NewMockChannelGW(ctrl)
	n := NewNotifier(repo, gw,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "n-1" }))
	return n, repo, gw
}

func TestTargetGroups(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   []string
	}{
		{"user", User("u-1"), []string{"u-1", "user"}},
		{"worker", Worker("w-1"), []string{"w-1", "worker"}},
		{"direct", Direct("w-1"), []string{"w-1"}},
		{"direct without id", Direct(""), nil},
		{"workers", Workers(), []string{"worker"}},
		{"everyone", Everyone(), []string{models.GroupEveryone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Groups())
		})
	}
}

func TestGroups_Union(t *testing.T) {
	got := Groups(User("u-1"), Worker("w-1"), Workers(), Direct("w-1"))
	assert.Equal(t, []string{"u-1", "user", "w-1", "worker"}, got)
}

func TestNotify_CreatesRecordAndAnnounces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	n, repo, gw := newTestNotifier(ctrl)

	repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *models.Notification) error {
			assert.Equal(t, "n-1", rec.ID)
			assert.Equal(t, "u-1", rec.UserID)
			assert.Equal(t, models.NotificationBookingAccepted, rec.Type)
			assert.Equal(t, fixedNow, rec.CreatedAt)
			assert.JSONEq(t, `{"bookingId":"b-1","status":"accepted"}`, string(rec.Data))
			return nil
		})
	gw.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.ChannelEvent) error {
			assert.Equal(t, constants.EventNotificationNew, ev.Event)
			assert.Equal(t, []string{"u-1", "user"}, ev.Groups)
			assert.Equal(t, "b-1", ev.BookingID)
			return nil
		})

	rec, err := n.Notify(context.Background(), User("u-1"), Input{
		Type:  models.NotificationBookingAccepted,
		Title: "Booking accepted",
		Data:  models.NotificationData{BookingID: "b-1", Status: models.BookingStatusAccepted},
	})

	require.NoError(t, err)
	assert.Equal(t, "n-1", rec.ID)
}

func TestNotify_PublishFailureIsNotReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	n, repo, gw := newTestNotifier(ctrl)

	repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil)
	gw.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

	_, err := n.Notify(context.Background(), Worker("w-1"), Input{Type: models.NotificationBookingCompleted})
	assert.NoError(t, err)
}

func TestNotify_StoreFailureSkipsAnnouncement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	n, repo, _ := newTestNotifier(ctrl)

	repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := n.Notify(context.Background(), User("u-1"), Input{Type: models.NotificationBookingCreated})
	assert.Error(t, err)
}

func TestNotify_RequiresRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	n, _, _ := newTestNotifier(ctrl)

	_, err := n.Notify(context.Background(), Workers(), Input{Type: models.NotificationBookingCreated})
	assert.Error(t, err)
}

func TestEmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	n, _, gw := newTestNotifier(ctrl)

	gw.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.ChannelEvent) error {
			assert.Equal(t, constants.EventBookingAccepted, ev.Event)
			assert.Equal(t, []string{"u-1", "user", "w-1", "worker"}, ev.Groups)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "b-1", payload["bookingId"])
			assert.Equal(t, fixedNow, ev.OccurredAt)
			return nil
		})

	err := n.Emit(context.Background(), constants.EventBookingAccepted,
		map[string]string{"bookingId": "b-1"}, "b-1", User("u-1"), Worker("w-1"))
	require.NoError(t, err)

	// no groups, nothing published
	require.NoError(t, n.Emit(context.Background(), constants.EventBookingCancelled, nil, "b-1", Direct("")))
}
