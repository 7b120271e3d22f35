package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
)

// AmenityModule
// Public: GET /amenities, GET /amenities/:id
// Admin: POST /amenities, PUT /amenities/:id
type AmenityModule struct {
	Handler *handlers.AmenityHandler
	Guards  Guards
}

func NewAmenityModule(h *handlers.AmenityHandler, g Guards) *AmenityModule {
	return &AmenityModule{Handler: h, Guards: g}
}

func (m *AmenityModule) Register(rg *gin.RouterGroup) {
	rg.GET("/amenities", m.Handler.List)
	rg.GET("/amenities/:id", m.Handler.Get)
	rg.POST("/amenities", m.Guards.writes(m.Handler.Create)...)
	rg.PUT("/amenities/:id", m.Guards.writes(m.Handler.Update)...)
}
