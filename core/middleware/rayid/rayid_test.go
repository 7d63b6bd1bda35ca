package rayid

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(Get(c))
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run("Generates id", func(t *testing.T) {
		resp, err := setupApp().Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		rid := resp.Header.Get(Header)
		_, parseErr := uuid.Parse(rid)
		assert.NoError(t, parseErr)
		assert.Equal(t, rid, string(body))
	})

	t.Run("Reuses valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(Header, incoming)

		resp, err := setupApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, incoming, resp.Header.Get(Header))
	})

	t.Run("Replaces malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(Header, "not-a-uuid")

		resp, err := setupApp().Test(req)
		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", resp.Header.Get(Header))
	})
}
