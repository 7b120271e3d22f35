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

type AmenityHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewAmenityHandler(f *application.Facade, logger *logrus.Logger) *AmenityHandler {
	return &AmenityHandler{Facade: f, Logger: logger}
}

type amenityRequest struct {
	Name *string `json:"name"`
}

func (h *AmenityHandler) Create(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	var in entity.AmenityInput
	if req.Name != nil {
		in.Name = *req.Name
	}
	a, err := h.Facade.CreateAmenity(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "amenity created", nil)
}

func (h *AmenityHandler) List(c *gin.Context) {
	as, err := h.Facade.GetAllAmenities(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, as, "amenities", map[string]any{"count": len(as)})
}

func (h *AmenityHandler) Get(c *gin.Context) {
	a, err := h.Facade.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "amenity", nil)
}

func (h *AmenityHandler) Update(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, err := h.Facade.UpdateAmenity(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), entity.AmenityPatch{Name: req.Name})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "amenity updated", nil)
}
