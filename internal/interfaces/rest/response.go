package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Response{OK: true, Data: data})
}

// WriteError maps an error from any layer to its HTTP status and envelope.
// Server-side failures are logged here, at the boundary, so inner layers can
// propagate errors without logging them twice.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := application.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"code", application.ToErrorCode(err),
			"error", err,
		)
	}
	WriteJSON(w, status, Response{OK: false, Error: err.Error()})
}
