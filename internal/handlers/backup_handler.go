package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/backup"
	"github.com/gravadigital/prestigio-api/internal/metrics"
	"github.com/gravadigital/prestigio-api/internal/response"
	"github.com/gravadigital/prestigio-api/internal/services"
)

type BackupHandler struct {
	service  *services.PrestigeService
	uploader *backup.Uploader
}

func NewBackupHandler(service *services.PrestigeService, uploader *backup.Uploader) *BackupHandler {
	return &BackupHandler{service: service, uploader: uploader}
}

// CreateBackup handles POST /api/backup: uploads a snapshot of the store
// to the configured bucket
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	if h.uploader == nil {
		response.BadRequestError(c, "Backup is not configured")
		return
	}

	snapshot, err := h.service.Snapshot()
	if err != nil {
		response.InternalServerError(c, "Failed to load data")
		return
	}

	object, err := h.uploader.Upload(c.Request.Context(), snapshot)
	if err != nil {
		metrics.SnapshotBackups.WithLabelValues("error").Inc()
		response.InternalServerError(c, "Backup upload failed")
		return
	}

	metrics.SnapshotBackups.WithLabelValues("ok").Inc()
	response.SuccessResponse(c, http.StatusOK, "Snapshot uploaded", gin.H{"object": object})
}
