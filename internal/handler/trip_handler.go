package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/service"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
	"github.com/nomadly/itinerary-api/pkg/response"
)

// TripHandler exposes trip, day and fixed-window endpoints.
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler constructs a trip handler.
func NewTripHandler(svc *service.TripService) *TripHandler {
	return &TripHandler{service: svc}
}

// Create godoc
// @Summary Create a trip with its day rows
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} response.Envelope
// @Router /trips [post]
func (h *TripHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trip, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, trip)
}

// List godoc
// @Summary List the caller's trips
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /trips [get]
func (h *TripHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	trips, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trips, nil)
}

// Get godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id} [get]
func (h *TripHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	trip, err := h.service.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trip, nil)
}

// Update godoc
// @Summary Update trip fields
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Trip payload"
// @Success 200 {object} response.Envelope
// @Router /trips/{id} [patch]
func (h *TripHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trip, err := h.service.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trip, nil)
}

// Delete godoc
// @Summary Delete a trip
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 204
// @Router /trips/{id} [delete]
func (h *TripHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateDay godoc
// @Summary Update a trip day
// @Tags Days
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param payload body dto.UpdateDayRequest true "Day payload"
// @Success 200 {object} response.Envelope
// @Router /days/{dayId} [patch]
func (h *TripHandler) UpdateDay(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	day, err := h.service.UpdateDay(c.Request.Context(), claims.UserID, c.Param("dayId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day, nil)
}

// CreateFixedWindow godoc
// @Summary Pin a fixed window onto a day
// @Tags Days
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param payload body dto.CreateFixedWindowRequest true "Fixed window payload"
// @Success 201 {object} response.Envelope
// @Router /days/{dayId}/fixed-windows [post]
func (h *TripHandler) CreateFixedWindow(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateFixedWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	window, err := h.service.CreateFixedWindow(c.Request.Context(), claims.UserID, c.Param("dayId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, window)
}

// ListFixedWindows godoc
// @Summary List a day's fixed windows
// @Tags Days
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Success 200 {object} response.Envelope
// @Router /days/{dayId}/fixed-windows [get]
func (h *TripHandler) ListFixedWindows(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	windows, err := h.service.ListFixedWindows(c.Request.Context(), claims.UserID, c.Param("dayId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, windows, nil)
}

// DeleteFixedWindow godoc
// @Summary Remove a fixed window
// @Tags Days
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param windowId path string true "Fixed window ID"
// @Success 204
// @Router /days/{dayId}/fixed-windows/{windowId} [delete]
func (h *TripHandler) DeleteFixedWindow(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.DeleteFixedWindow(c.Request.Context(), claims.UserID, c.Param("dayId"), c.Param("windowId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
