package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
)

// AuthModule
// Public: POST /auth/login, POST /auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.AuthHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", m.Guards.Login, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
}
