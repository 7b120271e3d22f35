package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
)

// UserModule
// Public: POST /users (admin token needed for is_admin), GET /users,
// GET /users/:id, GET /users/:id/reviews
// Protected: PUT /users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewUserModule(h *handlers.UserHandler, g Guards) *UserModule {
	return &UserModule{Handler: h, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Guards.Signup, m.Handler.Create)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:id", m.Handler.Get)
	rg.GET("/users/:id/reviews", m.Handler.Reviews)
	rg.PUT("/users/:id", m.Guards.writes(m.Handler.Update)...)
}
