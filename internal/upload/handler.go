package upload

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal/transport"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	Store(file multipart.File, header *multipart.FileHeader) (*Result, error)
}

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	maxSizeBytes int64
}

func NewHandler(svc ServiceAPI, maxSizeBytes int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:  transport.NewBaseHandler(lg),
		Service:      svc,
		maxSizeBytes: maxSizeBytes,
	}
}

// Upload accepts a multipart form with a single "photo" field and
// returns the stored file's public URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes+1024)

	if err := r.ParseMultipartForm(h.maxSizeBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "missing photo field")
		return
	}
	defer file.Close()

	result, err := h.Service.Store(file, header)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "File uploaded successfully", result)
}
