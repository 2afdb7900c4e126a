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

type PublisherHandler struct {
	repo *repository.PublisherRepository
}

func NewPublisherHandler(repo *repository.PublisherRepository) *PublisherHandler {
	return &PublisherHandler{repo: repo}
}

// ListPublishers godoc
// @Summary      List all publishers
// @Tags         publishers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Publisher
// @Router       /api/publishers [get]
func (h *PublisherHandler) ListPublishers(w http.ResponseWriter, r *http.Request) *common.AppError {
	publishers, err := h.repo.GetAllPublishers(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve publishers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(publishers)
	return nil
}

// CreatePublisher godoc
// @Summary      Create a publisher
// @Tags         publishers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateNameRequest true "New publisher"
// @Success      201 {object} model.Publisher
// @Router       /api/publishers [post]
func (h *PublisherHandler) CreatePublisher(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateNameRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	publisher := &model.Publisher{Name: req.Name}
	if err := h.repo.CreatePublisher(r.Context(), publisher); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create publisher", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(publisher)
	return nil
}

// DeletePublisher godoc
// @Summary      Delete a publisher
// @Tags         publishers
// @Security     BearerAuth
// @Param        id path int true "Publisher id"
// @Success      204
// @Failure      404 {object} common.AppError
// @Router       /api/publishers/{id} [delete]
func (h *PublisherHandler) DeletePublisher(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid publisher ID", err)
	}

	if err := h.repo.DeletePublisher(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Publisher not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete publisher", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
