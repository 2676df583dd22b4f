package book

import (
	"errors"
	"net/http"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgRequired     = "Title and author are required"
	msgNotFound     = "Book not found"
	msgDeleted      = "Book deleted successfully"
	msgFetchBooks   = "Error fetching books"
	msgFetchBook    = "Error fetching book"
	msgAddBook      = "Error adding book"
	msgUpdateBook   = "Error updating book"
	msgDeleteBook   = "Error deleting book"
	msgBodyTooLarge = "Request body too large"
)

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.serverError(w, r, msgFetchBooks, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.serverError(w, r, msgFetchBook, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body CreateInput true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		h.badBody(w, err)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, msgRequired)
			return
		}
		h.serverError(w, r, msgAddBook, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// Update handles PUT /books/{id}
// @Summary Update a book
// @Description Only the supplied fields are overwritten. No field is validated.
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body Patch true "Fields to overwrite"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p Patch
	if err := httpx.DecodeJSON(r, &p); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		h.badBody(w, err)
		return
	}

	b, err := h.service.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.serverError(w, r, msgUpdateBook, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.serverError(w, r, msgDeleteBook, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, msgDeleted)
}

func (h *HTTPHandler) badBody(w http.ResponseWriter, err error) {
	if httpx.IsBodyTooLarge(err) {
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	httpx.JSONError(w, http.StatusBadRequest, msgInvalidBody)
}

func (h *HTTPHandler) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.log.Error(message,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", httpx.RequestIDFrom(r)),
	)
	httpx.JSONError(w, http.StatusInternalServerError, message)
}
