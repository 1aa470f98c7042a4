package users

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	usersGroup := protected.Group("/users")
	{
		usersGroup.GET("/me", h.Me)
		usersGroup.GET("", h.List)
		usersGroup.GET("/:id", h.Get)
		usersGroup.PUT("/:id", h.Update)
		usersGroup.DELETE("/:id", h.Delete)
	}
}
