package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nomadly/itinerary-api/internal/models"
	"github.com/nomadly/itinerary-api/internal/service"
	"github.com/nomadly/itinerary-api/pkg/response"
)

// POIHandler exposes catalog read endpoints.
type POIHandler struct {
	service *service.POIService
}

// NewPOIHandler constructs a POI handler.
func NewPOIHandler(svc *service.POIService) *POIHandler {
	return &POIHandler{service: svc}
}

// List godoc
// @Summary List catalog entries
// @Tags POIs
// @Produce json
// @Param city query string false "Filter by city"
// @Param district query string false "Filter by district"
// @Param tag query string false "Filter by tag"
// @Param limit query int false "Max results"
// @Success 200 {object} response.Envelope
// @Router /pois [get]
func (h *POIHandler) List(c *gin.Context) {
	var filter models.POIFilter
	filter.City = c.Query("city")
	filter.District = c.Query("district")
	filter.Tag = c.Query("tag")
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "40")); err == nil {
		filter.Limit = limit
	}

	pois, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pois, nil)
}

// Get godoc
// @Summary Get a catalog entry
// @Tags POIs
// @Produce json
// @Param id path string true "POI ID"
// @Success 200 {object} response.Envelope
// @Router /pois/{id} [get]
func (h *POIHandler) Get(c *gin.Context) {
	poi, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, poi, nil)
}
