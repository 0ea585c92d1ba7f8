package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 2,
		Window:   time.Minute,
	})

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	doRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		err := handler(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	assert.Equal(t, http.StatusOK, doRequest().Code)
	assert.Equal(t, http.StatusOK, doRequest().Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest().Code)
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 1,
		Window:   10 * time.Millisecond,
	})

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	time.Sleep(20 * time.Millisecond)

	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	rec = httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterPerKeyIsolation(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
		KeyFunc: func(c echo.Context) string {
			return c.Request().Header.Get("X-Test-Key")
		},
	})

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	doRequest := func(key string) error {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Test-Key", key)
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	assert.NoError(t, doRequest("a"))
	assert.Error(t, doRequest("a"))
	assert.NoError(t, doRequest("b"))
}
