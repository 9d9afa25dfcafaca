package handlers

import (
	"net/http"

	"github.com/seguimed/sustancias-api/health"
)

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// HealthCheck returns server health information
func HealthCheck(checker *health.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, data, httpStatus := checker.HealthCheck()

		RespondWithJSON(w, httpStatus, HealthResponse{
			Status: status,
			Data:   data,
		})
	}
}
