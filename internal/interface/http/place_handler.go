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

type PlaceHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewPlaceHandler(f *application.Facade, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Facade: f, Logger: logger}
}

type createPlaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

type updatePlaceRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	OwnerID     *string   `json:"owner_id"`
	Amenities   *[]string `json:"amenities"`
}

type placeAmenityRequest struct {
	AmenityID string `json:"amenity_id" binding:"required"`
}

func (h *PlaceHandler) Create(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Facade.CreatePlace(c.Request.Context(), middleware.CallerFrom(c), entity.PlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		Amenities:   req.Amenities,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "place created", nil)
}

func (h *PlaceHandler) List(c *gin.Context) {
	ps, err := h.Facade.GetAllPlaces(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ps, "places", map[string]any{"count": len(ps)})
}

func (h *PlaceHandler) Get(c *gin.Context) {
	p, err := h.Facade.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "place", nil)
}

func (h *PlaceHandler) Update(c *gin.Context) {
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Facade.UpdatePlace(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), entity.PlacePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		Amenities:   req.Amenities,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "place updated", nil)
}

// Reviews GET /places/:id/reviews
func (h *PlaceHandler) Reviews(c *gin.Context) {
	rs, err := h.Facade.GetReviewsByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rs, "reviews", map[string]any{"count": len(rs)})
}

// Amenities GET /places/:id/amenities
func (h *PlaceHandler) Amenities(c *gin.Context) {
	as, err := h.Facade.GetPlaceAmenities(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, as, "amenities", map[string]any{"count": len(as)})
}

// AddAmenity POST /places/:id/amenities
func (h *PlaceHandler) AddAmenity(c *gin.Context) {
	var req placeAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Facade.AddPlaceAmenity(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.AmenityID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "amenity attached", nil)
}
