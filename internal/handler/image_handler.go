package handlers

import (
	"errors"
	"net/http"

	"graphblog/internal/middleware"
	"graphblog/internal/service"
)

// multipart overhead allowed on top of the file itself
const multipartSlack = 1 << 20

type ImageResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath,omitempty"`
}

// PostImageHandler stores the "image" form file and optionally removes the
// file at "oldPath".
func (h *Handlers) PostImageHandler(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAuth(r.Context()) {
		h.writeError(w, r, service.NewUnauthenticatedError(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartSlack)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			h.writeError(w, r, service.NewFileTooLargeError(h.Cfg.MaxUploadSize))
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			writeJSON(w, ImageResponse{Message: "No file provided!"}, http.StatusOK)
		default:
			h.Log.Debugw("Ошибка при обработке формы", "error", err)
			writeJSON(w, ErrorResponse{Message: "Malformed multipart body.", Status: http.StatusBadRequest}, http.StatusBadRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	// getting the file
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, ImageResponse{Message: "No file provided!"}, http.StatusOK)
		return
	}
	defer file.Close()

	filePath, err := h.ImageService.UploadImage(r.Context(), file, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			writeJSON(w, ImageResponse{Message: "No file provided!"}, http.StatusOK)
			return
		}
		h.writeError(w, r, err)
		return
	}

	if oldPath := r.FormValue("oldPath"); oldPath != "" {
		h.ImageService.DeleteImage(r.Context(), oldPath)
	}

	writeJSON(w, ImageResponse{Message: "File stored.", FilePath: filePath}, http.StatusCreated)
}
