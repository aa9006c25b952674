package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/planner"
	"github.com/nomadly/itinerary-api/internal/service"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
	"github.com/nomadly/itinerary-api/pkg/jobs"
	"github.com/nomadly/itinerary-api/pkg/response"
)

// RegeneratePayload is the job payload for queued regenerations.
type RegeneratePayload struct {
	UserID string
	TripID string
}

// ItineraryHandler exposes schedule generation, readback, agenda editing and
// export endpoints.
type ItineraryHandler struct {
	itineraries *service.ItineraryService
	exports     *service.ExportService
	queue       *jobs.Queue
}

// NewItineraryHandler constructs an itinerary handler. The queue may be nil;
// regeneration then always runs synchronously.
func NewItineraryHandler(itineraries *service.ItineraryService, exports *service.ExportService, queue *jobs.Queue) *ItineraryHandler {
	return &ItineraryHandler{itineraries: itineraries, exports: exports, queue: queue}
}

// Generate godoc
// @Summary Regenerate the full schedule of a trip
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param async query bool false "Queue the regeneration instead of waiting"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Router /trips/{id}/generate [post]
func (h *ItineraryHandler) Generate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	tripID := c.Param("id")

	if c.Query("async") == "true" && h.queue != nil {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    "regenerate_trip",
			Payload: RegeneratePayload{UserID: claims.UserID, TripID: tripID},
		}
		if err := h.queue.Enqueue(job); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue regeneration"))
			return
		}
		response.JSON(c, http.StatusAccepted, dto.GenerateResponse{TripID: tripID, Queued: true}, nil)
		return
	}

	result, err := h.itineraries.RegenerateTrip(c.Request.Context(), claims.UserID, tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetItinerary godoc
// @Summary Read the full day-by-day schedule of a trip
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/itinerary [get]
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	itinerary, err := h.itineraries.GetItinerary(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, itinerary, nil)
}

// ListDays godoc
// @Summary List a trip's days with fixed windows and agenda items
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/days [get]
func (h *ItineraryHandler) ListDays(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	days, err := h.itineraries.ListDays(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// FreeSegments godoc
// @Summary Compute the schedulable gaps of a day
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Success 200 {object} response.Envelope
// @Router /days/{dayId}/free-segments [get]
func (h *ItineraryHandler) FreeSegments(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	segments, err := h.itineraries.FreeSegments(c.Request.Context(), claims.UserID, c.Param("dayId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, segments, nil)
}

// MaterializeDay godoc
// @Summary Lay a proposed plan out on a day
// @Tags Itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param payload body planner.ValidatedPlan true "Proposed plan"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /days/{dayId}/materialize [post]
func (h *ItineraryHandler) MaterializeDay(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// The plan body is untrusted producer output; the tolerant decoder
	// accepts anything and validation happens in the service.
	var raw planner.RawPlan
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	items, err := h.itineraries.MaterializeDay(c.Request.Context(), claims.UserID, c.Param("dayId"), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, items)
}

// CreateAgendaItem godoc
// @Summary Manually place a single visit on a day
// @Tags Itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param payload body dto.CreateAgendaItemRequest true "Agenda item payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /days/{dayId}/agenda [post]
func (h *ItineraryHandler) CreateAgendaItem(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateAgendaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.itineraries.CreateAgendaItem(c.Request.Context(), claims.UserID, c.Param("dayId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// DeleteAgendaItem godoc
// @Summary Remove a scheduled visit
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Day ID"
// @Param itemId path string true "Agenda item ID"
// @Success 204
// @Router /days/{dayId}/agenda/{itemId} [delete]
func (h *ItineraryHandler) DeleteAgendaItem(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.itineraries.DeleteAgendaItem(c.Request.Context(), claims.UserID, c.Param("dayId"), c.Param("itemId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a trip's schedule as CSV or PDF
// @Tags Itinerary
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /trips/{id}/export [get]
func (h *ItineraryHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var (
		payload  []byte
		filename string
		mime     string
		err      error
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, filename, err = h.exports.ExportCSV(c.Request.Context(), claims.UserID, c.Param("id"))
		mime = "text/csv"
	case "pdf":
		payload, filename, err = h.exports.ExportPDF(c.Request.Context(), claims.UserID, c.Param("id"))
		mime = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, mime, payload)
}
