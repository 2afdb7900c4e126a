// file: handler/review_handler.go

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

type ReviewHandler struct {
	repo *repository.ReviewRepository
}

func NewReviewHandler(repo *repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{repo: repo}
}

// ListReviews godoc
// @Summary      List reviews for a book
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Book id"
// @Success      200 {array} model.Review
// @Router       /api/books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) *common.AppError {
	bookID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	reviews, err := h.repo.GetReviewsByBook(r.Context(), bookID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve reviews", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
	return nil
}

// CreateReview godoc
// @Summary      Review a book
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Book id"
// @Param        request body model.CreateReviewRequest true "Review"
// @Success      201 {object} model.Review
// @Router       /api/books/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) *common.AppError {
	bookID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.CreateReviewRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	review := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.repo.CreateReview(r.Context(), review); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create review", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
	return nil
}

// DeleteReview godoc
// @Summary      Delete own review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id path int true "Review id"
// @Success      204
// @Failure      404 {object} common.AppError
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) *common.AppError {
	reviewID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid review ID", err)
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.repo.DeleteReview(r.Context(), reviewID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Review not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete review", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
