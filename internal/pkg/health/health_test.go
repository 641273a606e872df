package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestService_Check(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		svc := NewService()
		svc.AddChecker("a", CheckerFunc(func(context.Context) error { return nil }))
		svc.AddChecker("b", CheckerFunc(func(context.Context) error { return nil }))

		report := svc.Check(context.Background())

		assert.Equal(t, StatusHealthy, report.Status)
		assert.Len(t, report.Dependencies, 2)
		assert.Equal(t, []string{"a", "b"}, svc.Names())
	})

	t.Run("one failure marks report unhealthy", func(t *testing.T) {
		svc := NewService()
		svc.AddChecker("ok", CheckerFunc(func(context.Context) error { return nil }))
		svc.AddChecker("db", CheckerFunc(func(context.Context) error { return errors.New("connection refused") }))

		report := svc.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, report.Status)
		assert.Equal(t, StatusHealthy, report.Dependencies["ok"].Status)
		assert.Equal(t, "connection refused", report.Dependencies["db"].Error)
	})

	t.Run("nil clients are skipped", func(t *testing.T) {
		svc := NewService()
		svc.AddChecker("postgres", NewPostgresChecker(nil))
		svc.AddChecker("redis", NewRedisChecker(nil))
		svc.AddChecker("nats", NewNATSChecker(nil))

		assert.Equal(t, StatusHealthy, svc.Check(context.Background()).Status)
	})
}

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()

	checker := NewRedisChecker(client)
	require.NoError(t, checker.CheckHealth(context.Background()))

	mr.Close()
	assert.Error(t, checker.CheckHealth(context.Background()))
}

func TestRegisterEndpoints(t *testing.T) {
	t.Setenv("VERSION", "")
	healthy := true

	e := echo.New()
	svc := NewService()
	svc.AddChecker("store", CheckerFunc(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	}))
	RegisterEndpoints(e, "booking-service", "1.2.3", svc)

	rec := serve(e, "/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "booking-service", info.ServiceName)
	assert.Equal(t, "development", info.Version)
	assert.False(t, info.ServerTime.IsZero())

	assert.Equal(t, http.StatusOK, serve(e, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(e, "/health/live").Code)
	assert.Equal(t, http.StatusOK, serve(e, "/health/ready").Code)

	rec = serve(e, "/health/detailed")
	require.Equal(t, http.StatusOK, rec.Code)
	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "1.2.3", report.Version)

	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, "/health/ready").Code)
	rec = serve(e, "/health/detailed")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusUnhealthy, report.Dependencies["store"].Status)
}
