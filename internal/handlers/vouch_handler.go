package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/response"
	"github.com/gravadigital/prestigio-api/internal/services"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

type VouchHandler struct {
	service *services.PrestigeService
}

func NewVouchHandler(service *services.PrestigeService) *VouchHandler {
	return &VouchHandler{service: service}
}

type VouchRequest struct {
	EventID     *int64 `json:"event_id" binding:"required"`
	Fingerprint string `json:"fingerprint" binding:"required"`
	Choice      string `json:"choice" binding:"required"`
}

// SubmitVote handles POST /api/vouch.
//
// A self-vote or repeat vote is not an error: the response comes back 200
// with recorded=false, matching the quiet-ignore behavior of the vouch UI.
func (h *VouchHandler) SubmitVote(c *gin.Context) {
	var req VouchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.service.Vouch(*req.EventID, req.Fingerprint, req.Choice)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPending handles GET /api/pending
func (h *VouchHandler) GetPending(c *gin.Context) {
	pending, err := h.service.Pending()
	if err != nil {
		response.InternalServerError(c, "Failed to load pending events")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", pending)
}
