package upload

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-management/internal"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Result is what callers embed in attendance submissions.
type Result struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

type Service struct {
	dir          string
	maxSizeBytes int64
	logger       *slog.Logger
}

func NewService(dir string, maxSizeBytes int64, logger *slog.Logger) *Service {
	return &Service{
		dir:          dir,
		maxSizeBytes: maxSizeBytes,
		logger:       logger,
	}
}

// Store writes the uploaded file under a fresh uuid name so uploads can
// never collide or overwrite each other.
func (s *Service) Store(file multipart.File, header *multipart.FileHeader) (*Result, error) {
	if header.Size > s.maxSizeBytes {
		return nil, internal.NewValidationError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxSizeBytes),
			internal.ErrCodeInvalidUpload,
		)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, internal.NewValidationError("unsupported file type, expected jpg, jpeg, png or webp", internal.ErrCodeInvalidUpload)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, internal.NewInternalError("failed to prepare upload directory", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, internal.NewInternalError("failed to create upload file", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, s.maxSizeBytes+1))
	if err != nil {
		os.Remove(path)
		return nil, internal.NewInternalError("failed to write upload file", err)
	}
	if written > s.maxSizeBytes {
		os.Remove(path)
		return nil, internal.NewValidationError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxSizeBytes),
			internal.ErrCodeInvalidUpload,
		)
	}

	s.logger.Info("stored upload", "file", name, "size", written)

	return &Result{
		URL:      "/uploads/" + name,
		FileName: name,
		Size:     written,
	}, nil
}
