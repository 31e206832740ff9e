package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.Validation("Invalid JSON format", errors.New("unexpected EOF")), 400, "Invalid JSON format"},
		{"lookup", apperr.Lookup("No current results in session"), 400, "No current results in session"},
		{"configuration", apperr.Configuration("Session middleware not installed"), 500, "Session middleware not installed"},
		{"external", apperr.ExternalService("API request failed", errors.New("timeout")), 502, "API request failed"},
		{"wrapped", pkgerrors.Wrap(apperr.Lookup("Selected recipe index out of range"), "dispatch"), 400, "Selected recipe index out of range"},
		{"unknown", errors.New("boom"), 500, "Internal server error"},
		{"fiber", fiber.ErrNotFound, 404, "Cannot GET /x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
			app.Get("/x", func(ctx *fiber.Ctx) error {
				if tt.name == "fiber" {
					return fiber.NewError(fiber.StatusNotFound, "Cannot GET /x")
				}
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decodeError(t, resp).Error)
		})
	}
}

func TestErrorHandler_Details(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
	app.Get("/x", func(ctx *fiber.Ctx) error {
		return apperr.Validation("Invalid JSON format", errors.New("unexpected end of JSON input"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, "unexpected end of JSON input", decodeError(t, resp).Details)
}

func TestMethodNotAllowed(t *testing.T) {
	app := fiber.New()
	app.Post("/search/", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })
	app.All("/search/", MethodNotAllowed)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Only POST requests allowed", decodeError(t, resp).Error)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/search/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateRequest(t *testing.T) {
	type body struct {
		Modification string `validate:"required"`
	}

	assert.NoError(t, ValidateRequest(body{Modification: "vegan"}, "Missing recipe or modification"))

	err := ValidateRequest(body{}, "Missing recipe or modification")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Missing recipe or modification", err.Error())
}

func newSessionApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware(SessionCookieConfig{Secret: secret, TTL: time.Hour}))
	app.Get("/", func(ctx *fiber.Ctx) error {
		key, _ := SessionKey(ctx)
		return ctx.SendString(key)
	})
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "sessionid" {
			return c
		}
	}
	return nil
}

func TestSessionMiddleware_IssuesAndReusesKey(t *testing.T) {
	app := newSessionApp("secret")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	firstKey, _ := io.ReadAll(resp.Body)
	require.NotEmpty(t, firstKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: cookie.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	secondKey, _ := io.ReadAll(resp.Body)
	assert.Equal(t, string(firstKey), string(secondKey))
}

func TestSessionMiddleware_RejectsForeignSignature(t *testing.T) {
	token, err := signSessionToken("3f8a2c4e-6b1d-4e0f-9a7c-2d5b8e1f0a33", []byte("other"), time.Hour)
	require.NoError(t, err)

	app := newSessionApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)

	key, _ := io.ReadAll(resp.Body)
	assert.NotEqual(t, "3f8a2c4e-6b1d-4e0f-9a7c-2d5b8e1f0a33", string(key))
	assert.NotEmpty(t, string(key))
}

func TestParseSessionToken(t *testing.T) {
	secret := []byte("secret")

	_, ok := parseSessionToken("", secret)
	assert.False(t, ok)

	_, ok = parseSessionToken("not-a-jwt", secret)
	assert.False(t, ok)

	token, err := signSessionToken("not-a-uuid", secret, time.Hour)
	require.NoError(t, err)
	_, ok = parseSessionToken(token, secret)
	assert.False(t, ok)

	expired, err := signSessionToken("3f8a2c4e-6b1d-4e0f-9a7c-2d5b8e1f0a33", secret, -time.Minute)
	require.NoError(t, err)
	_, ok = parseSessionToken(expired, secret)
	assert.False(t, ok)
}
