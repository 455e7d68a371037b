package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := map[string]struct {
		deps map[string]Pinger
		want int
	}{
		"all up":     {deps: map[string]Pinger{"postgres": ok, "redis": ok}, want: fiber.StatusOK},
		"redis down": {deps: map[string]Pinger{"postgres": ok, "redis": down}, want: fiber.StatusServiceUnavailable},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health/ready", NewHealthHandler("marketplace", "test", tc.deps).Ready)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}
