package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

const maxUploadBytes = 5 << 20 // 5 MB

var uploadBuckets = map[string]bool{
	"avatars":         true,
	"store-images":    true,
	"medicine-images": true,
}

var uploadExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// UploadHandler stores user images in object storage. Objects live
// under the caller's own prefix so users cannot touch each other's
// files.
type UploadHandler struct {
	Store ports.ObjectStore
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	if h.Store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "file exceeds the 5 MB limit or body is malformed")
		return
	}

	bucket := r.FormValue("bucket")
	if !uploadBuckets[bucket] {
		writeDomainError(w, r, domain.Invalid("bucket", "must be one of avatars, store-images, medicine-images"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDomainError(w, r, domain.Invalid("file", "is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	ext, ok := uploadExtensions[contentType]
	if !ok {
		writeDomainError(w, r, domain.Invalid("file", "content type must be jpeg, png, webp or gif"))
		return
	}

	objectPath := userID.String() + "/" + uuid.New().String() + "." + ext

	url, err := h.Store.Put(r.Context(), bucket, objectPath, data, contentType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.UploadResponse{URL: url, Path: objectPath})
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	if h.Store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	var req dto.DeleteUploadRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !uploadBuckets[req.Bucket] {
		writeDomainError(w, r, domain.Invalid("bucket", "must be one of avatars, store-images, medicine-images"))
		return
	}

	// Only objects under the caller's own prefix are deletable.
	clean := path.Clean(req.Path)
	if !strings.HasPrefix(clean, userID.String()+"/") {
		writeDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Store.Remove(r.Context(), req.Bucket, clean); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
