package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/middleware"
	"publicsquare/internal/pkg/response"
)

// @Summary		Create reading list
// @Tags		Reading lists
// @Security	BearerAuth
// @Param		body	body	CreateReadingListRequest	true	"payload"
// @Success		201	{object}	ReadingListResponse
// @Router		/library/reading-lists [post]
func (h *Handler) CreateList(c *gin.Context) {
	var req CreateReadingListRequest
	if !bind(c, &req) {
		return
	}
	list, err := h.service.CreateList(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, list)
}

// @Router		/library/reading-lists [get]
func (h *Handler) Lists(c *gin.Context) {
	lists, err := h.service.Lists(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lists)
}

// @Router		/library/reading-lists/{id} [get]
func (h *Handler) GetList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.service.GetList(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router		/library/reading-lists/{id} [put]
func (h *Handler) UpdateList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateReadingListRequest
	if !bind(c, &req) {
		return
	}
	list, err := h.service.UpdateList(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router		/library/reading-lists/{id} [delete]
func (h *Handler) DeleteList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteList(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router		/library/reading-lists/{id}/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddItemRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.service.AddItem(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// @Router		/library/reading-lists/{id}/items/{user_book_id} [delete]
func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userBookID, ok := pathID(c, "user_book_id")
	if !ok {
		return
	}
	if err := h.service.RemoveItem(c.Request.Context(), middleware.UserID(c), id, userBookID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder takes {"items": [{"item_id", "order_index"}]}.
// @Router		/library/reading-lists/{id}/reorder [post]
func (h *Handler) Reorder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReorderRequest
	if !bind(c, &req) {
		return
	}
	if err := h.service.Reorder(c.Request.Context(), middleware.UserID(c), id, req.Items); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.Items)})
}
