package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fachig/blog-api/internal/storage"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20 // 5 MiB

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type UploadHandler struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewUploadHandler accepts a nil store, which disables uploads; images can
// still be referenced by external URL.
func NewUploadHandler(store storage.Storage, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

func (h *UploadHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			writeError(w, r, http.StatusNotImplemented, "UPLOAD_NOT_CONFIGURED",
				"Image uploads are not configured. Use external image URLs instead.")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST",
				"No file uploaded, or file exceeds the 5MB limit")
			return
		}
		defer file.Close()

		// Sniff the content type rather than trusting the client header.
		head := make([]byte, 512)
		n, err := file.Read(head)
		if err != nil && n == 0 {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Uploaded file is empty")
			return
		}
		contentType := http.DetectContentType(head[:n])
		ext, ok := imageExtensions[contentType]
		if !ok {
			writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed.")
			return
		}
		if _, err := file.Seek(0, 0); err != nil {
			h.logger.Error("rewind upload failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to process the uploaded file. Please try again.")
			return
		}

		key := fmt.Sprintf("uploads/%d-%s.%s", time.Now().Unix(), uuid.NewString()[:8], ext)
		if err := h.store.Upload(r.Context(), key, file, contentType); err != nil {
			h.logger.Error("image upload failed", "key", key, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to store the uploaded image. Please try again later.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"filename":     key,
			"url":          h.store.PublicURL(key),
			"originalName": header.Filename,
			"size":         header.Size,
			"mimetype":     contentType,
		})
	}
}
