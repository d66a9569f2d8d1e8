package handler

import (
	"net/http"

	"github.com/agrica/voice-gateway-go/internal/httputil"
)

// Health reports liveness for the load balancer and the telephony provider's
// uptime checks.
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "voice-gateway",
	})
}
