package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageResponse is the body of every 4xx/5xx reply from the recipe API.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON encodes v before writing headers so a failed encode never
// produces a partial response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}
