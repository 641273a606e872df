package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/tukang/internal/pkg/circuitbreaker"
	"github.com/piresc/tukang/internal/pkg/constants"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/models"
	natspkg "github.com/piresc/tukang/internal/pkg/nats"
)

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	subjects []string
	payloads []interface{}
}

func (f *fakePublisher) PublishJSON(subject string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, v)
	return f.err
}

func (f *fakePublisher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subjects)
}

type fakeHub struct {
	events []models.ChannelEvent
}

func (h *fakeHub) Deliver(ev models.ChannelEvent) int {
	h.events = append(h.events, ev)
	return len(ev.Groups)
}

func sampleEvent() models.ChannelEvent {
	return models.ChannelEvent{
		Groups:     []string{"user-1"},
		Event:      constants.EventBookingCreated,
		Payload:    json.RawMessage(`{"id":"b1"}`),
		BookingID:  "b1",
		OccurredAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNATSChannelGW_PublishesOnChannelSubject(t *testing.T) {
	pub := &fakePublisher{}
	gw := NewNATSChannelGW(pub, logger.NewNopLogger())

	require.NoError(t, gw.Publish(context.Background(), sampleEvent()))
	require.Equal(t, 1, pub.calls())
	assert.Equal(t, constants.SubjectBookingChannel, pub.subjects[0])
	assert.Equal(t, "b1", pub.payloads[0].(models.ChannelEvent).BookingID)
}

func TestNATSChannelGW_BreakerOpensAfterFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats: connection closed")}
	gw := NewNATSChannelGW(pub, logger.NewNopLogger())
	threshold := circuitbreaker.Defaults("x").Failures

	for i := 0; i < threshold; i++ {
		err := gw.Publish(context.Background(), sampleEvent())
		assert.Error(t, err)
	}
	err := gw.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, threshold, pub.calls())
}

func TestLocalChannelGW_DeliversToHub(t *testing.T) {
	hub := &fakeHub{}
	gw := NewLocalChannelGW(hub)

	require.NoError(t, gw.Publish(context.Background(), sampleEvent()))
	require.Len(t, hub.events, 1)
	assert.Equal(t, constants.EventBookingCreated, hub.events[0].Event)
}

func TestNATSChannelGW_RoundTrip(t *testing.T) {
	srv := natsserver.RunRandClientPortServer()
	defer srv.Shutdown()

	nc, err := natspkg.NewClient(srv.ClientURL(), "booking-gateway-test")
	require.NoError(t, err)
	defer nc.Close()

	received := make(chan models.ChannelEvent, 1)
	_, err = nc.Subscribe(constants.SubjectBookingChannel, func(data []byte) error {
		var ev models.ChannelEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		received <- ev
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, nc.GetConn().Flush())

	gw := NewNATSChannelGW(nc, logger.NewNopLogger())
	require.NoError(t, gw.Publish(context.Background(), sampleEvent()))

	select {
	case ev := <-received:
		assert.Equal(t, []string{"user-1"}, ev.Groups)
		assert.JSONEq(t, `{"id":"b1"}`, string(ev.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("channel event not received")
	}
}
