package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/domain/person"
	"github.com/gravadigital/prestigio-api/internal/response"
	"github.com/gravadigital/prestigio-api/internal/services"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

type EventHandler struct {
	service *services.PrestigeService
}

func NewEventHandler(service *services.PrestigeService) *EventHandler {
	return &EventHandler{service: service}
}

type CreateEventRequest struct {
	PersonID string `json:"id" binding:"required"`
	Date     string `json:"date"`
	Points   *int   `json:"points" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	// Vouch proposes the event instead of recording it directly; the
	// proposing device's fingerprint is then required
	Vouch       bool   `json:"vouch"`
	Fingerprint string `json:"fingerprint"`
}

// CreateEvent handles POST /api/event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	created, err := h.service.RecordEvent(services.RecordEventRequest{
		PersonID:    req.PersonID,
		Date:        req.Date,
		Points:      *req.Points,
		Reason:      req.Reason,
		Vouch:       req.Vouch,
		Fingerprint: req.Fingerprint,
	})
	if err != nil {
		if errors.Is(err, storage.ErrPersonNotFound) {
			response.BadRequestError(c, fmt.Sprintf("Person %q not found. Add them first.", req.PersonID))
			return
		}
		if errors.Is(err, person.ErrInvalidID) {
			response.BadRequestError(c, "Invalid ID")
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	sign := ""
	if created.Points >= 0 {
		sign = "+"
	}
	message := fmt.Sprintf("%s%d: %q", sign, created.Points, created.Reason)
	response.SuccessResponse(c, http.StatusCreated, message, created)
}

type UpdateEventRequest struct {
	PersonID *string `json:"id"`
	Date     *string `json:"date"`
	Points   *int    `json:"points"`
	Reason   *string `json:"reason"`
}

// UpdateEvent handles PUT /api/event/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.service.EditEvent(id, storage.EventPatch{
		PersonID: req.PersonID,
		Date:     req.Date,
		Points:   req.Points,
		Reason:   req.Reason,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			response.NotFoundError(c, "Invalid event index")
			return
		}
		if errors.Is(err, storage.ErrPersonNotFound) {
			response.BadRequestError(c, "Person not found")
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Event updated", updated)
}

// DeleteEvent handles DELETE /api/event/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	removed, err := h.service.RemoveEvent(id)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			response.NotFoundError(c, "Invalid event index")
			return
		}
		response.InternalServerError(c, "Failed to delete event")
		return
	}

	response.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Deleted event: %s", removed.Reason), removed)
}

// eventID parses the :id path parameter, writing the error response itself
func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequestError(c, "Invalid event id")
		return 0, false
	}
	return id, true
}
