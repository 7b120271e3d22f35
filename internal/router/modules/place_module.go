package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
)

// PlaceModule
// Public: GET /places, GET /places/:id, GET /places/:id/reviews,
// GET /places/:id/amenities
// Protected: POST /places, PUT /places/:id, POST /places/:id/amenities
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	Guards  Guards
}

func NewPlaceModule(h *handlers.PlaceHandler, g Guards) *PlaceModule {
	return &PlaceModule{Handler: h, Guards: g}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/places", m.Handler.List)
	rg.GET("/places/:id", m.Handler.Get)
	rg.GET("/places/:id/reviews", m.Handler.Reviews)
	rg.GET("/places/:id/amenities", m.Handler.Amenities)

	rg.POST("/places", m.Guards.writes(m.Handler.Create)...)
	rg.PUT("/places/:id", m.Guards.writes(m.Handler.Update)...)
	rg.POST("/places/:id/amenities", m.Guards.writes(m.Handler.AddAmenity)...)
}
