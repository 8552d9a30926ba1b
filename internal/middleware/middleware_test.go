package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newAuth(t *testing.T) *services.AuthService {
	t.Helper()
	users := repositories.NewMockUserRepository()
	require.NoError(t, users.Create(&models.User{ID: "1", Name: "Ravi Kumar", Email: "ravi@vendor.com", Type: models.UserTypeVendor}))
	require.NoError(t, users.Create(&models.User{ID: "3", Name: "Amit Restaurant", Email: "amit@service.com", Type: models.UserTypeServiceProvider}))
	return services.NewAuthService(users, repositories.NewMockSessionRepository(), "test_jwt_secret", time.Hour)
}

func protectedApp(auth *services.AuthService) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.JSON(CurrentUser(c))
	})
	app.Get("/vendor", AuthRequired(auth), RequireRole(models.UserTypeVendor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	auth := newAuth(t)
	app := protectedApp(auth)

	_, token, err := auth.Login("ravi@vendor.com", "pw", models.UserTypeVendor)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", "Bearer "+token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "Bearer garbage"))
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	auth := newAuth(t)
	app := protectedApp(auth)

	session, token, err := auth.Login("ravi@vendor.com", "pw", models.UserTypeVendor)
	require.NoError(t, err)
	require.NoError(t, auth.Logout(session))

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", "Bearer "+token))
}

func TestRequireRole(t *testing.T) {
	auth := newAuth(t)
	app := protectedApp(auth)

	_, vendorToken, err := auth.Login("ravi@vendor.com", "pw", models.UserTypeVendor)
	require.NoError(t, err)
	_, buyerToken, err := auth.Login("amit@service.com", "pw", models.UserTypeServiceProvider)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, get(t, app, "/vendor", "Bearer "+vendorToken))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/vendor", "Bearer "+buyerToken))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	app := fiber.New()
	app.Get("/login", rl.Limit(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	assert.Equal(t, fiber.StatusOK, get(t, app, "/login", ""))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/login", ""))
	assert.Equal(t, fiber.StatusTooManyRequests, get(t, app, "/login", ""))
}

func TestRateLimiter_ForgetsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	first := rl.getLimiter("10.0.0.1")
	now = now.Add(11 * time.Minute)
	rl.getLimiter("10.0.0.2")

	assert.NotSame(t, first, rl.getLimiter("10.0.0.1"))
	assert.Len(t, rl.visitors, 2)
}

func TestSimulatedLatency(t *testing.T) {
	app := fiber.New()
	app.Use(SimulatedLatency(50 * time.Millisecond))
	app.All("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	start := time.Now()
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	start = time.Now()
	_, err = app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
