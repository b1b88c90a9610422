package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/auth"
	"github.com/vaulto-note/backend/internal/config"
	"github.com/vaulto-note/backend/internal/models"
)

type stubUserGetter struct {
	users map[uuid.UUID]*models.User
	calls int
}

func (s *stubUserGetter) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.calls++
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("no rows")
}

func setupApp(cfg *config.Config, users *stubUserGetter) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, users, zap.NewNop()), func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id": identity.UserID().String(),
			"system":  identity.IsSystem(),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		APISecretKey: "S3CR3T",
	}

	active := &models.User{ID: uuid.New(), IsActive: true}
	inactive := &models.User{ID: uuid.New(), IsActive: false}
	users := &stubUserGetter{users: map[uuid.UUID]*models.User{
		active.ID:   active,
		inactive.ID: inactive,
	}}
	app := setupApp(cfg, users)

	token := func(id uuid.UUID, secret string, ttl time.Duration) string {
		tok, err := auth.GenerateToken(secret, id, ttl)
		if err != nil {
			t.Fatal(err)
		}
		return tok
	}

	t.Run("missing header", func(t *testing.T) {
		if resp := doRequest(t, app, ""); resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("not a bearer", func(t *testing.T) {
		if resp := doRequest(t, app, "Basic dXNlcg=="); resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if resp := doRequest(t, app, "Bearer garbage"); resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		tok := token(active.ID, "test-secret", -time.Minute)
		if resp := doRequest(t, app, "Bearer "+tok); resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := token(active.ID, "other-secret", time.Hour)
		if resp := doRequest(t, app, "Bearer "+tok); resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("operator secret bypasses user table", func(t *testing.T) {
		before := users.calls
		resp := doRequest(t, app, "Bearer S3CR3T")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if users.calls != before {
			t.Error("operator secret must not hit the user store")
		}
	})

	t.Run("user gone", func(t *testing.T) {
		tok := token(uuid.New(), "test-secret", time.Hour)
		if resp := doRequest(t, app, "Bearer "+tok); resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		tok := token(inactive.ID, "test-secret", time.Hour)
		if resp := doRequest(t, app, "Bearer "+tok); resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		tok := token(active.ID, "test-secret", time.Hour)
		if resp := doRequest(t, app, "Bearer "+tok); resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestAuthMiddleware_NoOperatorSecretConfigured(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	users := &stubUserGetter{users: map[uuid.UUID]*models.User{}}
	app := setupApp(cfg, users)

	// Пустой операторский секрет не должен совпадать с пустым bearer.
	resp := doRequest(t, app, "Bearer ")
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}
