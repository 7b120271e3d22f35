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

type ReviewHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewReviewHandler(f *application.Facade, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Facade: f, Logger: logger}
}

type createReviewRequest struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id" binding:"required"`
}

type updateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	rv, err := h.Facade.CreateReview(c.Request.Context(), middleware.CallerFrom(c), entity.ReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		UserID:  req.UserID,
		PlaceID: req.PlaceID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, rv, "review created", nil)
}

func (h *ReviewHandler) List(c *gin.Context) {
	rs, err := h.Facade.GetAllReviews(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rs, "reviews", map[string]any{"count": len(rs)})
}

func (h *ReviewHandler) Get(c *gin.Context) {
	rv, err := h.Facade.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rv, "review", nil)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	rv, err := h.Facade.UpdateReview(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), entity.ReviewPatch{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rv, "review updated", nil)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Facade.DeleteReview(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
