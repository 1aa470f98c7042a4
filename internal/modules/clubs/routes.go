package clubs

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	clubsGroup := v1.Group("/clubs")
	{
		clubsGroup.GET("", h.List)
		clubsGroup.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	clubsGroup := protected.Group("/clubs")
	{
		clubsGroup.POST("", h.Create)
		clubsGroup.PUT("/:id", h.Update)
		clubsGroup.DELETE("/:id", h.Delete)
		clubsGroup.POST("/:id/join", h.Join)
		clubsGroup.POST("/:id/leave", h.Leave)
		clubsGroup.GET("/:id/members", h.Members)
	}
}

// RegisterEventRoutes expects a group that authenticates from the header or
// the token query parameter.
func (h *Handler) RegisterEventRoutes(ws *gin.RouterGroup) {
	ws.GET("/clubs/:id/events", h.Events)
}
