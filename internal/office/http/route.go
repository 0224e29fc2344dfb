package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	offices := g.Group("/offices")
	offices.Use(authMiddleware)
	{
		offices.GET("", h.ListOffices)
		offices.GET("/:id", h.GetOffice)
		offices.GET("/:id/layout", h.Layout)

		offices.POST("", adminMiddleware, h.CreateOffice)
		offices.DELETE("", adminMiddleware, h.DeleteOfficeByNumber)
		offices.DELETE("/:id", adminMiddleware, h.DeleteOffice)
		offices.POST("/:id/floor-plan", adminMiddleware, h.UploadFloorPlan)
	}

	areas := g.Group("/areas")
	areas.Use(authMiddleware)
	{
		areas.GET("", h.ListAreas)
		areas.GET("/:id", h.GetArea)
		areas.POST("", adminMiddleware, h.CreateArea)
	}

	rows := g.Group("/rows")
	rows.Use(authMiddleware)
	{
		rows.GET("", h.ListRows)
		rows.GET("/:id", h.GetRow)
		rows.POST("", adminMiddleware, h.CreateRow)
	}
}
