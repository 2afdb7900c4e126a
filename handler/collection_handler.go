// file: handler/collection_handler.go

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"livelib-api/common"
	"livelib-api/model"
	"livelib-api/repository"
	"net/http"
	"strconv"
)

type CollectionHandler struct {
	repo *repository.CollectionRepository
}

func NewCollectionHandler(repo *repository.CollectionRepository) *CollectionHandler {
	return &CollectionHandler{repo: repo}
}

// ListCollections godoc
// @Summary      List the caller's collections
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Collection
// @Router       /api/collections [get]
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	collections, err := h.repo.GetCollectionsByUser(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve collections", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(collections)
	return nil
}

// CreateCollection godoc
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateCollectionRequest true "New collection"
// @Success      201 {object} model.Collection
// @Router       /api/collections [post]
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.CreateCollectionRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	collection := &model.Collection{UserID: userID, Title: req.Title}
	if err := h.repo.CreateCollection(r.Context(), collection); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create collection", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(collection)
	return nil
}

// GetCollection godoc
// @Summary      Get a collection with its books
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Collection id"
// @Success      200 {object} model.Collection
// @Failure      404 {object} common.AppError
// @Router       /api/collections/{id} [get]
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid collection ID", err)
	}

	collection, err := h.repo.GetCollectionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Collection not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve collection", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(collection)
	return nil
}

// DeleteCollection godoc
// @Summary      Delete own collection
// @Tags         collections
// @Security     BearerAuth
// @Param        id path int true "Collection id"
// @Success      204
// @Failure      404 {object} common.AppError
// @Router       /api/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid collection ID", err)
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.repo.DeleteCollection(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Collection not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete collection", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// AddBook godoc
// @Summary      Add a book to own collection
// @Tags         collections
// @Security     BearerAuth
// @Param        id path int true "Collection id"
// @Param        bookId path int true "Book id"
// @Success      200
// @Failure      403 {object} common.AppError
// @Router       /api/collections/{id}/books/{bookId} [put]
func (h *CollectionHandler) AddBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	collection, appErr := h.ownCollection(r)
	if appErr != nil {
		return appErr
	}

	bookID, err := strconv.Atoi(r.PathValue("bookId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	if err := h.repo.AddBook(r.Context(), collection.ID, bookID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not add book to collection", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// RemoveBook godoc
// @Summary      Remove a book from own collection
// @Tags         collections
// @Security     BearerAuth
// @Param        id path int true "Collection id"
// @Param        bookId path int true "Book id"
// @Success      200
// @Failure      403 {object} common.AppError
// @Router       /api/collections/{id}/books/{bookId} [delete]
func (h *CollectionHandler) RemoveBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	collection, appErr := h.ownCollection(r)
	if appErr != nil {
		return appErr
	}

	bookID, err := strconv.Atoi(r.PathValue("bookId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	if err := h.repo.RemoveBook(r.Context(), collection.ID, bookID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not remove book from collection", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// ownCollection resolves the {id} path parameter and checks the caller
// owns that collection.
func (h *CollectionHandler) ownCollection(r *http.Request) (*model.Collection, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return nil, common.NewAppError(http.StatusBadRequest, "Invalid collection ID", err)
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	collection, err := h.repo.GetCollectionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewAppError(http.StatusNotFound, "Collection not found", nil)
		}
		return nil, common.NewAppError(http.StatusInternalServerError, "Could not retrieve collection", err)
	}
	if collection.UserID != userID {
		return nil, common.NewAppError(http.StatusForbidden, "Cannot modify another user's collection", nil)
	}
	return collection, nil
}
