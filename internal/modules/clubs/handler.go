package clubs

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
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// @Summary		Create club
// @Tags		Clubs
// @Security	BearerAuth
// @Param		body	body	CreateClubRequest	true	"payload"
// @Success		201	{object}	domain.Club
// @Router		/clubs [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}
	club, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, club)
}

// @Summary		List clubs
// @Tags		Clubs
// @Param		skip	query	int	false	"offset"
// @Param		limit	query	int	false	"page size (1-1000)"
// @Router		/clubs [get]
func (h *Handler) List(c *gin.Context) {
	skip, limit, err := utils.Page(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	clubs, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, clubs)
}

// @Summary		Get club
// @Tags		Clubs
// @Param		id	path	int	true	"club id"
// @Router		/clubs/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	club, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, club)
}

// @Summary		Update club
// @Tags		Clubs
// @Security	BearerAuth
// @Param		id		path	int					true	"club id"
// @Param		body	body	UpdateClubRequest	true	"payload"
// @Router		/clubs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}
	club, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, club)
}

// @Summary		Delete club
// @Tags		Clubs
// @Security	BearerAuth
// @Success		204
// @Router		/clubs/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Join club
// @Tags		Clubs
// @Security	BearerAuth
// @Success		201	{object}	domain.ClubMember
// @Router		/clubs/{id}/join [post]
func (h *Handler) Join(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	member, err := h.service.Join(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

// @Summary		Leave club
// @Tags		Clubs
// @Security	BearerAuth
// @Success		204
// @Router		/clubs/{id}/leave [post]
func (h *Handler) Leave(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	if err := h.service.Leave(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Club members
// @Tags		Clubs
// @Security	BearerAuth
// @Router		/clubs/{id}/members [get]
func (h *Handler) Members(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	members, err := h.service.Members(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

// Events streams the club's events over a websocket. Browsers may pass the
// access token as ?token= since they cannot set headers on the handshake.
// @Summary		Club events (websocket)
// @Tags		Clubs
// @Param		token	query	string	false	"access token"
// @Router		/clubs/{id}/events [get]
func (h *Handler) Events(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}
	if _, err := h.service.Get(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	userID := middleware.UserID(c)
	if err := h.hub.ServeWS(c.Writer, c.Request, userID, id); err != nil {
		log.Printf("club_ws_upgrade_failed user_id=%d club_id=%d err=%v", userID, id, err)
	}
}

func clubID(c *gin.Context) (int64, bool) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return 0, false
	}
	return id, true
}
