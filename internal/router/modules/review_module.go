package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
)

// ReviewModule
// Public: GET /reviews, GET /reviews/:id
// Protected: POST /reviews, PUT /reviews/:id, DELETE /reviews/:id
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Guards  Guards
}

func NewReviewModule(h *handlers.ReviewHandler, g Guards) *ReviewModule {
	return &ReviewModule{Handler: h, Guards: g}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)

	rg.POST("/reviews", m.Guards.writes(m.Handler.Create)...)
	rg.PUT("/reviews/:id", m.Guards.writes(m.Handler.Update)...)
	rg.DELETE("/reviews/:id", m.Guards.writes(m.Handler.Delete)...)
}
