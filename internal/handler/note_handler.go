package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"notable-server/internal/domain"
	"notable-server/internal/middleware"
	"notable-server/internal/service"
	"notable-server/internal/storage"
	"notable-server/pkg/response"

	"github.com/gorilla/mux"
)

type NoteHandler struct {
	service       *service.NoteService
	maxUploadSize int64
}

func NewNoteHandler(service *service.NoteService, maxUploadSize int64) *NoteHandler {
	return &NoteHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// Create accepts a multipart form with title, content, and an optional
// single image part. The response reports the stage the create-with-image
// sequence reached; an upload or patch failure still returns 201 with the
// created note and the image error.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := &domain.CreateNoteRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	image, file, errMsg := h.imageFromForm(r)
	if errMsg != "" {
		response.BadRequest(w, errMsg)
		return
	}
	if file != nil {
		defer file.Close()
	}

	userID := middleware.GetUserID(r)

	result, err := h.service.Create(r.Context(), userID, req, image)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			response.BadRequest(w, "Title is required")
			return
		}
		response.InternalError(w, "Failed to create note")
		return
	}

	response.Created(w, result)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to fetch notes")
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.GetByID(r.Context(), userID, noteID)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to fetch note")
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Update(r.Context(), userID, noteID, &req); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			response.BadRequest(w, "Title is required")
			return
		}
		response.InternalError(w, "Failed to update note")
		return
	}

	response.Success(w, map[string]string{"message": "Note updated successfully"})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		response.InternalError(w, "Failed to delete note")
		return
	}

	response.Success(w, map[string]string{"message": "Note deleted successfully"})
}

// AttachImage uploads an image for an existing note and patches its stored
// image path.
func (h *NoteHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	image, file, errMsg := h.imageFromForm(r)
	if errMsg != "" {
		response.BadRequest(w, errMsg)
		return
	}
	if image == nil {
		response.BadRequest(w, "Image file is required")
		return
	}
	defer file.Close()

	userID := middleware.GetUserID(r)

	imagePath, err := h.service.AttachImage(r.Context(), userID, noteID, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			response.NotFound(w, "Note not found")
		case errors.Is(err, storage.ErrObjectExists):
			response.Conflict(w, "An image already exists at this path")
		default:
			response.InternalError(w, "Failed to attach image")
		}
		return
	}

	response.Success(w, map[string]string{"image_path": imagePath})
}

// imageFromForm pulls the optional single image part out of the multipart
// form. Returns a non-empty message on a rejected file.
func (h *NoteHandler) imageFromForm(r *http.Request) (*service.ImageUpload, multipart.File, string) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, ""
		}
		return nil, nil, "Invalid image upload"
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return nil, nil, "Only image uploads are allowed"
	}

	if header.Size > h.maxUploadSize {
		file.Close()
		return nil, nil, "Image exceeds the maximum upload size"
	}

	return &service.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	}, file, ""
}
