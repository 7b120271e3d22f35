package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/application"
	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
	"github.com/oksasatya/go-hbnb/pkg/response"
)

type AuthHandler struct {
	Facade  *application.Facade
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(f *application.Facade, jwt *helpers.JWTManager, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Facade: f, JWT: jwt, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *entity.User `json:"user"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	token, exp, err := h.JWT.GenerateAccessToken(u.ID, u.IsAdmin)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, token, exp)
	response.Success(c, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp.UTC(),
		User:        u,
	}, "login successful", nil)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
