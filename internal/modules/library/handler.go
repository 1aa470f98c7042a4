package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"publicsquare/internal/middleware"
	"publicsquare/internal/pkg/response"
	"publicsquare/internal/pkg/utils"
	"publicsquare/internal/pkg/validator"
	"publicsquare/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// @Summary		Create book
// @Tags		Library
// @Security	BearerAuth
// @Param		body	body	CreateBookRequest	true	"payload"
// @Success		201	{object}	BookResponse
// @Router		/library/books [post]
func (h *Handler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !bind(c, &req) {
		return
	}
	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// ListBooks supports title, author and genre substring filters.
// @Summary		List books
// @Tags		Library
// @Security	BearerAuth
// @Param		title	query	string	false	"title contains"
// @Param		author	query	string	false	"author contains"
// @Param		genre	query	string	false	"genre contains"
// @Param		skip	query	int		false	"offset"
// @Param		limit	query	int		false	"page size (1-1000)"
// @Router		/library/books [get]
func (h *Handler) ListBooks(c *gin.Context) {
	skip, limit, err := utils.Page(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	books, err := h.service.ListBooks(c.Request.Context(), repository.BookFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// @Summary		Get book
// @Tags		Library
// @Security	BearerAuth
// @Router		/library/books/{id} [get]
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// @Summary		Update book
// @Tags		Library
// @Security	BearerAuth
// @Param		body	body	UpdateBookRequest	true	"payload"
// @Router		/library/books/{id} [put]
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookRequest
	if !bind(c, &req) {
		return
	}
	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// @Summary		Delete book
// @Tags		Library
// @Security	BearerAuth
// @Success		204
// @Router		/library/books/{id} [delete]
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LookupISBN fetches metadata for a 10 or 13 digit ISBN from Open Library.
// @Summary		ISBN lookup
// @Tags		Library
// @Security	BearerAuth
// @Param		body	body	ISBNLookupRequest	true	"payload"
// @Success		200	{object}	openlibrary.Lookup
// @Failure		503	{object}	map[string]interface{}
// @Router		/library/books/lookup/isbn [post]
func (h *Handler) LookupISBN(c *gin.Context) {
	var req ISBNLookupRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.service.LookupISBN(c.Request.Context(), req.ISBN)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// @Summary		Add book to my library
// @Tags		Library
// @Security	BearerAuth
// @Param		body	body	AddUserBookRequest	true	"payload"
// @Success		201	{object}	UserBookResponse
// @Router		/library/my-library [post]
func (h *Handler) AddToLibrary(c *gin.Context) {
	var req AddUserBookRequest
	if !bind(c, &req) {
		return
	}
	entry, err := h.service.AddToLibrary(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// @Summary		My library
// @Tags		Library
// @Security	BearerAuth
// @Param		is_read		query	bool	false	"read filter"
// @Param		is_favorite	query	bool	false	"favorite filter"
// @Param		min_rating	query	number	false	"minimum rating (0-5)"
// @Router		/library/my-library [get]
func (h *Handler) ListLibrary(c *gin.Context) {
	skip, limit, err := utils.Page(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	filter := repository.UserBookFilter{Skip: skip, Limit: limit}
	if filter.IsRead, err = utils.OptionalBool(c, "is_read"); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if filter.IsFavorite, err = utils.OptionalBool(c, "is_favorite"); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if filter.MinRating, err = utils.OptionalFloat(c, "min_rating", 0, 5); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, err := h.service.ListLibrary(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// @Router		/library/my-library/{id} [get]
func (h *Handler) GetUserBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.reply(c)(h.service.GetUserBook(c.Request.Context(), middleware.UserID(c), id))
}

// @Router		/library/my-library/{id} [put]
func (h *Handler) UpdateUserBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserBookRequest
	if !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.UpdateUserBook(c.Request.Context(), middleware.UserID(c), id, req))
}

// @Router		/library/my-library/{id} [delete]
func (h *Handler) RemoveFromLibrary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemoveFromLibrary(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkRead accepts an optional {read_date}; an empty body means now.
// @Router		/library/my-library/{id}/mark-read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MarkReadRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.MarkRead(c.Request.Context(), middleware.UserID(c), id, req))
}

// @Router		/library/my-library/{id}/mark-unread [post]
func (h *Handler) MarkUnread(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.reply(c)(h.service.MarkUnread(c.Request.Context(), middleware.UserID(c), id))
}

// @Router		/library/my-library/{id}/reading-status [post]
func (h *Handler) SetReadingStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReadingStatusRequest
	if !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.SetReadingStatus(c.Request.Context(), middleware.UserID(c), id, req.ReadingStatus))
}

// @Router		/library/my-library/{id}/rating [post]
func (h *Handler) SetRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RatingRequest
	if !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.SetRating(c.Request.Context(), middleware.UserID(c), id, *req.Rating))
}

// @Router		/library/my-library/{id}/review [post]
func (h *Handler) SetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.SetReview(c.Request.Context(), middleware.UserID(c), id, req.Review))
}

// @Router		/library/my-library/{id}/notes [post]
func (h *Handler) SetNotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req NotesRequest
	if !bind(c, &req) {
		return
	}
	h.reply(c)(h.service.SetNotes(c.Request.Context(), middleware.UserID(c), id, req.Notes))
}

// @Router		/library/my-library/{id}/toggle-favorite [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.reply(c)(h.service.ToggleFavorite(c.Request.Context(), middleware.UserID(c), id))
}

// @Summary		Library statistics
// @Tags		Library
// @Security	BearerAuth
// @Success		200	{object}	domain.LibraryStats
// @Router		/library/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// reply writes a library entry or the error that replaced it.
func (h *Handler) reply(c *gin.Context) func(*UserBookResponse, error) {
	return func(entry *UserBookResponse, err error) {
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, entry)
	}
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParamID(c, name)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
		return 0, false
	}
	return id, true
}
