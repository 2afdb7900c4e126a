// file: handler/book_handler.go

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"livelib-api/common"
	"livelib-api/logger"
	"livelib-api/model"
	"livelib-api/service"
	"net/http"
	"strconv"
)

type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(service *service.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// ListBooks godoc
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Book
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) *common.AppError {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve books", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(books)
	return nil
}

// GetBook godoc
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Book id"
// @Success      200 {object} model.Book
// @Failure      404 {object} common.AppError
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Book not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve book", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
	return nil
}

// CreateBook godoc
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateBookRequest true "New book"
// @Success      201 {object} model.Book
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateBookRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	book := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		GenreID:       req.GenreID,
		PublisherID:   req.PublisherID,
		PublishedYear: req.PublishedYear,
	}
	if err := h.service.CreateBook(r.Context(), book); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create book", err)
	}

	logger.Log.WithField("book_id", book.ID).Info("Book created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
	return nil
}

// UpdateBook godoc
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "Book id"
// @Param        request body model.UpdateBookRequest true "Updated book"
// @Success      200 {object} model.Book
// @Failure      404 {object} common.AppError
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	var req model.UpdateBookRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	book := &model.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		GenreID:       req.GenreID,
		PublisherID:   req.PublisherID,
		PublishedYear: req.PublishedYear,
	}
	if err := h.service.UpdateBook(r.Context(), book); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Book not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update book", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
	return nil
}

// DeleteBook godoc
// @Summary      Remove a book from the catalog
// @Tags         books
// @Security     BearerAuth
// @Param        id path int true "Book id"
// @Success      204
// @Failure      404 {object} common.AppError
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Book not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete book", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
