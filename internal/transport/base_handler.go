package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

// APIResponse is the uniform envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteSuccess writes a success envelope with the given message and data.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeEnvelope(w, status, APIResponse{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, APIResponse{Success: false, Message: message, Data: nil})
}

// WriteAppError maps a service error onto the envelope. AppErrors carry
// their own status and caller-safe message; anything else becomes a
// generic 500 so internal detail never leaks.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("internal error", "error", appErr.Error())
			h.WriteError(w, appErr.StatusCode, "Internal server error")
			return
		}
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}

	h.Logger.Error("unclassified error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
