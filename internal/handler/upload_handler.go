package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"

	"ethiqia/internal/service"
)

const multipartOverhead = 1 << 20

func (h *Handlers) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, func(req service.UploadRequest) (string, error) {
		return h.UploadService.UploadImage(r.Context(), service.KindPost, req)
	})
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, func(req service.UploadRequest) (string, error) {
		return h.UploadService.UploadImage(r.Context(), service.KindAvatar, req)
	})
}

func (h *Handlers) UploadProfileAvatar(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, func(req service.UploadRequest) (string, error) {
		return h.UploadService.UploadProfileAvatar(r.Context(), req)
	})
}

func (h *Handlers) handleUpload(w http.ResponseWriter, r *http.Request, store func(service.UploadRequest) (string, error)) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	tooLarge := fmt.Sprintf("file exceeds %s", humanize.IBytes(uint64(maxSize)))

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, tooLarge, http.StatusBadRequest)
			return
		}
		WriteError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		WriteError(w, tooLarge, http.StatusBadRequest)
		return
	}

	url, err := store(uploadRequest(userID, header, file))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]string{"url": url}, http.StatusCreated)
}

func uploadRequest(userID string, header *multipart.FileHeader, file multipart.File) service.UploadRequest {
	return service.UploadRequest{
		UserID:      userID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		File:        file,
	}
}
