package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// APIHandler handles general API endpoints
type APIHandler struct {
	Started  time.Time
	Method   string
	Strategy string
	Sourced  bool
}

// HealthResponse reports liveness and the active matching settings
type HealthResponse struct {
	Status           string  `json:"status"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	SimilarityMethod string  `json:"similarity_method"`
	BucketStrategy   string  `json:"bucket_strategy"`
	DatabaseSource   bool    `json:"database_source"`
}

// Health returns the server status
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:           "ok",
		UptimeSeconds:    time.Since(h.Started).Seconds(),
		SimilarityMethod: h.Method,
		BucketStrategy:   h.Strategy,
		DatabaseSource:   h.Sourced,
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
