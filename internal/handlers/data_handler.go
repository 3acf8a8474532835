package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/response"
	"github.com/gravadigital/prestigio-api/internal/services"
)

type DataHandler struct {
	service *services.PrestigeService
}

func NewDataHandler(service *services.PrestigeService) *DataHandler {
	return &DataHandler{service: service}
}

// GetData handles GET /api/data, returning the raw snapshot for the admin panel
func (h *DataHandler) GetData(c *gin.Context) {
	snapshot, err := h.service.Snapshot()
	if err != nil {
		response.InternalServerError(c, "Failed to load data")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetLeaderboard handles GET /api/leaderboard
func (h *DataHandler) GetLeaderboard(c *gin.Context) {
	ranked, totals, err := h.service.Leaderboard()
	if err != nil {
		response.InternalServerError(c, "Failed to compute leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": ranked,
		"totals":      totals,
	})
}

// GetHistory handles GET /api/history, listing live events newest first
func (h *DataHandler) GetHistory(c *gin.Context) {
	history, err := h.service.History()
	if err != nil {
		response.InternalServerError(c, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, history)
}
