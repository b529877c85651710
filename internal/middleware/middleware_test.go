package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/resulto-ai/resulto/internal/auth"
	"github.com/resulto-ai/resulto/internal/logging"
)

func errorJSON(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return c.Status(code).SendString(err.Error())
}

func bearerApp(tokens *auth.Tokens) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorJSON})
	app.Get("/me", BearerAuth(tokens), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, authz string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set(fiber.HeaderAuthorization, authz)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestBearerAuth(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	app := bearerApp(tokens)

	token, _, err := tokens.Issue("google-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	status, body := get(t, app, "/me", "Bearer "+token)
	if status != http.StatusOK || body != "google-123" {
		t.Fatalf("expected uid, got %d %q", status, body)
	}
	status, _ = get(t, app, "/me", "bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("scheme should be case-insensitive, got %d", status)
	}
}

func TestBearerAuthRejects(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	app := bearerApp(tokens)

	expired, _, _ := auth.NewTokens("secret", -time.Hour).Issue("u1")
	foreign, _, _ := auth.NewTokens("other-secret", time.Hour).Issue("u1")

	cases := []struct {
		name  string
		authz string
		msg   string
	}{
		{"no header", "", msgMissingToken},
		{"wrong scheme", "Basic dXNlcjpwYXNz", msgMissingToken},
		{"empty token", "Bearer ", msgMissingToken},
		{"expired", "Bearer " + expired, msgExpiredToken},
		{"wrong secret", "Bearer " + foreign, msgInvalidToken},
		{"garbage", "Bearer not.a.jwt", msgInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, app, "/me", tc.authz)
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d", status)
			}
			if body != tc.msg {
				t.Fatalf("expected %q got %q", tc.msg, body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-42")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "req-42" || resp.Header.Get(requestIDHeader) != "req-42" {
		t.Fatalf("expected propagated id, got body %q header %q", body, resp.Header.Get(requestIDHeader))
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("expected generated id")
	}
}

func TestAuditLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestID(), Audit(logging.NewWithWriter(&buf, "debug")))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusBadRequest, "nope") })

	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))

	out := buf.String()
	if !strings.Contains(out, "/ok") || !strings.Contains(out, "request_id") {
		t.Fatalf("missing request log: %s", out)
	}
	if !strings.Contains(out, "400") || !strings.Contains(out, "nope") {
		t.Fatalf("missing error log: %s", out)
	}
}

func rateLimitedApp(cache *redis.Client, max int) *fiber.App {
	app := fiber.New()
	app.Post("/login", RateLimit(cache, "auth", max), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func hit(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	app := rateLimitedApp(cache, 3)

	for i := 0; i < 3; i++ {
		if code := hit(t, app); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, code)
		}
	}
	if code := hit(t, app); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", code)
	}

	mr.FastForward(time.Minute + time.Second)
	if code := hit(t, app); code != http.StatusOK {
		t.Fatalf("expected window reset, got %d", code)
	}
}

func TestRateLimitRedisFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	app := rateLimitedApp(cache, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		if code := hit(t, app); code != http.StatusOK {
			t.Fatalf("expected fail-open 200 got %d", code)
		}
	}
}

func TestRateLimitLocalFallback(t *testing.T) {
	app := rateLimitedApp(nil, 2)
	if hit(t, app) != http.StatusOK || hit(t, app) != http.StatusOK {
		t.Fatalf("expected burst to be allowed")
	}
	if code := hit(t, app); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", code)
	}
}
