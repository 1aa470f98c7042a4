package library

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	lib := protected.Group("/library")

	books := lib.Group("/books")
	{
		books.POST("", h.CreateBook)
		books.GET("", h.ListBooks)
		books.POST("/lookup/isbn", h.LookupISBN)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}

	mine := lib.Group("/my-library")
	{
		mine.POST("", h.AddToLibrary)
		mine.GET("", h.ListLibrary)
		mine.GET("/:id", h.GetUserBook)
		mine.PUT("/:id", h.UpdateUserBook)
		mine.DELETE("/:id", h.RemoveFromLibrary)
		mine.POST("/:id/mark-read", h.MarkRead)
		mine.POST("/:id/mark-unread", h.MarkUnread)
		mine.POST("/:id/reading-status", h.SetReadingStatus)
		mine.POST("/:id/rating", h.SetRating)
		mine.POST("/:id/review", h.SetReview)
		mine.POST("/:id/notes", h.SetNotes)
		mine.POST("/:id/toggle-favorite", h.ToggleFavorite)
	}

	lists := lib.Group("/reading-lists")
	{
		lists.POST("", h.CreateList)
		lists.GET("", h.Lists)
		lists.GET("/:id", h.GetList)
		lists.PUT("/:id", h.UpdateList)
		lists.DELETE("/:id", h.DeleteList)
		lists.POST("/:id/items", h.AddItem)
		lists.DELETE("/:id/items/:user_book_id", h.RemoveItem)
		lists.POST("/:id/reorder", h.Reorder)
	}

	lib.GET("/stats", h.Stats)
}
