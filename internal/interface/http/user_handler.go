package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/application"
	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/interface/middleware"
	"github.com/oksasatya/go-hbnb/pkg/response"
)

type UserHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewUserHandler(f *application.Facade, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Facade: f, Logger: logger}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Facade.CreateUser(c.Request.Context(), middleware.CallerFrom(c), entity.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

// List GET /users, optionally filtered by ?email=
func (h *UserHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		u, err := h.Facade.GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		response.Success(c, http.StatusOK, []*entity.User{u}, "users", nil)
		return
	}
	us, err := h.Facade.GetAllUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, us, "users", map[string]any{"count": len(us)})
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Facade.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Facade.UpdateUser(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), entity.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// Reviews GET /users/:id/reviews
func (h *UserHandler) Reviews(c *gin.Context) {
	rs, err := h.Facade.GetReviewsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rs, "reviews", map[string]any{"count": len(rs)})
}
