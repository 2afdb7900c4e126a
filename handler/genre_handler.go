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

type GenreHandler struct {
	repo *repository.GenreRepository
}

func NewGenreHandler(repo *repository.GenreRepository) *GenreHandler {
	return &GenreHandler{repo: repo}
}

// ListGenres godoc
// @Summary      List all genres
// @Tags         genres
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Genre
// @Router       /api/genres [get]
func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) *common.AppError {
	genres, err := h.repo.GetAllGenres(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve genres", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(genres)
	return nil
}

// CreateGenre godoc
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateNameRequest true "New genre"
// @Success      201 {object} model.Genre
// @Router       /api/genres [post]
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateNameRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	genre := &model.Genre{Name: req.Name}
	if err := h.repo.CreateGenre(r.Context(), genre); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create genre", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(genre)
	return nil
}

// DeleteGenre godoc
// @Summary      Delete a genre
// @Tags         genres
// @Security     BearerAuth
// @Param        id path int true "Genre id"
// @Success      204
// @Failure      404 {object} common.AppError
// @Router       /api/genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid genre ID", err)
	}

	if err := h.repo.DeleteGenre(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Genre not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete genre", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
