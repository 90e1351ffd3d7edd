package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	e := echo.New()
	Setup(e)

	e.GET("/api/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/handled", func(c echo.Context) error {
		c.Set("error", errors.New("provider down"))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "provider down"})
	})
	e.GET("/api/panic", func(c echo.Context) error {
		panic("boom")
	})
	e.GET("/api/health", func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	tests := []struct {
		target string
		want   int
	}{
		{target: "/api/ok", want: http.StatusOK},
		{target: "/api/handled", want: http.StatusBadGateway},
		{target: "/api/panic", want: http.StatusInternalServerError},
		{target: "/api/health", want: http.StatusServiceUnavailable},
		{target: "/api/missing", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.want, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get(echo.HeaderXRequestID))
		})
	}
}
