package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func requestIDApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(CtxRequestID).(string)
		return c.SendString(id)
	})
	return app
}

func TestRequestID(t *testing.T) {
	app := requestIDApp()

	t.Run("generated when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		got := resp.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("X-Request-ID = %q, want a generated uuid", got)
		}
	})

	t.Run("valid uuid passes through", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if got := resp.Header.Get("X-Request-ID"); got != id {
			t.Errorf("X-Request-ID = %q, want %q", got, id)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != id {
			t.Errorf("ctx request id = %q, want %q", body, id)
		}
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "<script>alert(1)</script>")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		got := resp.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("X-Request-ID = %q, want a fresh uuid instead of client garbage", got)
		}
	})
}
