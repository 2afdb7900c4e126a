package handler

import (
	"encoding/json"
	"livelib-api/common"
	"livelib-api/logger"
	"livelib-api/model"
	"livelib-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.User
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve users", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
	return nil
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id path int true "User id"
// @Param        request body model.UpdateUserRoleRequest true "New role"
// @Success      200
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID", err)
	}

	var req model.UpdateUserRoleRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.UpdateUserRole(r.Context(), userID, req.Role); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not update user role", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    req.Role,
	}).Info("User role updated")
	w.WriteHeader(http.StatusOK)
	return nil
}
