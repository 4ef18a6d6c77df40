package organizations

import (
	"net/http/httptest"
	"testing"

	"contentsync/core/reconcile"
	"contentsync/core/syncerr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "busy engine answers conflict", err: reconcile.ErrBusy, status: fiber.StatusConflict},
		{name: "missing record answers not found", err: syncerr.New(syncerr.KindNotFound, "nope"), status: fiber.StatusNotFound},
		{name: "validation answers bad request", err: syncerr.New(syncerr.KindValidation, "bad"), status: fiber.StatusBadRequest},
		{name: "upstream failure answers bad gateway", err: syncerr.New(syncerr.KindRequest, "api down"), status: fiber.StatusBadGateway},
		{name: "anything else answers internal error", err: syncerr.New(syncerr.KindSetup, "boom"), status: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return errorResponse(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	app := fiber.New()
	h := NewHandler(newTestService(t, "https://api.example.org"), nil)
	h.RegisterRoutes(app)

	paths := make(map[string][]string)
	for _, routes := range app.Stack() {
		for _, route := range routes {
			paths[route.Method] = append(paths[route.Method], route.Path)
		}
	}
	assert.Contains(t, paths[fiber.MethodPost], "/organizations/sync")
	assert.Contains(t, paths[fiber.MethodPost], "/organizations/sync/:id")
	assert.Contains(t, paths[fiber.MethodPost], "/organizations/availability")
	assert.Contains(t, paths[fiber.MethodGet], "/organizations/preview/:id")
}
