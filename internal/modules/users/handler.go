package users

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/middleware"
	"publicsquare/internal/pkg/response"
	"publicsquare/internal/pkg/utils"
	"publicsquare/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me returns the authenticated user.
// @Summary		Current user
// @Tags		Users
// @Security	BearerAuth
// @Success		200	{object}	domain.User
// @Router		/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}
	response.Success(c, http.StatusOK, user)
}

// @Summary		List users
// @Tags		Users
// @Security	BearerAuth
// @Param		skip	query	int	false	"offset"
// @Param		limit	query	int	false	"page size (1-1000)"
// @Router		/users [get]
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.Page(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	users, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// @Summary		Get user
// @Tags		Users
// @Security	BearerAuth
// @Param		id	path	int	true	"user id"
// @Router		/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// @Summary		Update user
// @Tags		Users
// @Security	BearerAuth
// @Param		id		path	int					true	"user id"
// @Param		body	body	UpdateUserRequest	true	"payload"
// @Router		/users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}
	user, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Delete deactivates the account and ends all of its sessions.
// @Summary		Delete user
// @Tags		Users
// @Security	BearerAuth
// @Param		id	path	int	true	"user id"
// @Router		/users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	revoked, err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	log.Printf("user_deactivated user_id=%d revoked_tokens=%d", id, revoked)
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}
