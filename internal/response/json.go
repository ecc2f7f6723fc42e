package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/family-savings/pkg/logger"
)

// WriteJSON writes data as the bare response body. A nil data writes no
// body, for 204 responses.
func (h *responseHandler) WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode response", "error", err, "status", status)
	}
}
