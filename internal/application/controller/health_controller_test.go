package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/model"
)

type stubHealthUseCase struct {
	response model.HealthResponse
}

func (s stubHealthUseCase) CheckHealth(context.Context) model.HealthResponse {
	return s.response
}

func TestCheckHealth_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status model.HealthStatus
		want   int
	}{
		{name: "up", status: model.StatusUp, want: http.StatusOK},
		{name: "down", status: model.StatusDown, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			NewHealthController(e.Group("/api"), stubHealthUseCase{response: model.HealthResponse{
				Status:   tt.status,
				Database: model.ComponentHealthStatus{Status: tt.status},
				Redis:    model.DisabledComponent(),
				Queue:    model.DisabledComponent(),
			}}).InitHealthRoutes()

			recorder := serve(e, "/api/health")
			assert.Equal(t, tt.want, recorder.Code)

			var body model.HealthResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, model.StatusUnknown, body.Redis.Status)
		})
	}
}
