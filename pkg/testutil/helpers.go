// Package testutil provides common utility functions for testing.
package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/iwvelando/boiler-optimizer/internal/cache"
	"github.com/iwvelando/boiler-optimizer/internal/controller"
	"github.com/iwvelando/boiler-optimizer/internal/optimize"
	"github.com/iwvelando/boiler-optimizer/internal/server"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/mathutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FillPage writes the four form inputs, in form order, into page.
func FillPage(page *controller.Page, feedwaterTemp, steamPressure, fuelFlow, efficiency string) {
	page.SetValue(controller.FeedwaterTemp, feedwaterTemp)
	page.SetValue(controller.SteamPressure, steamPressure)
	page.SetValue(controller.FuelFlow, fuelFlow)
	page.SetValue(controller.Efficiency, efficiency)
}

// StartRedis runs an in-memory Redis for the duration of the test and returns
// a cache connected to it.
func StartRedis(t testing.TB, ttl time.Duration) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// StartServer serves the full HTTP handler backed by the optimize service.
// A nil cache disables caching.
func StartServer(t testing.TB, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	handler := server.NewHandler(logger, optimize.NewService(logger, c), constants.DefaultMaxBodySizeBytes, "test")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// AssertClose fails the test when got and want differ by more than 1e-6.
func AssertClose(t testing.TB, name string, got, want float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, want, 1e-6) {
		t.Errorf("%s = %v, expected %v", name, got, want)
	}
}
