package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/domain/person"
	"github.com/gravadigital/prestigio-api/internal/response"
	"github.com/gravadigital/prestigio-api/internal/services"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

type PersonHandler struct {
	service *services.PrestigeService
}

func NewPersonHandler(service *services.PrestigeService) *PersonHandler {
	return &PersonHandler{service: service}
}

type CreatePersonRequest struct {
	ID     string `json:"id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

// CreatePerson handles POST /api/person
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	p, err := h.service.RegisterPerson(req.ID, req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, person.ErrInvalidID) {
			response.BadRequestError(c, "Invalid ID")
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Added %s", p.Name), p)
}

// DeletePerson handles DELETE /api/person/:id
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id := c.Param("id")

	p, err := h.service.RemovePerson(id)
	if err != nil {
		if errors.Is(err, storage.ErrPersonNotFound) {
			response.NotFoundError(c, fmt.Sprintf("Person %q not found", id))
			return
		}
		response.InternalServerError(c, "Failed to delete person")
		return
	}

	response.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Deleted %s and their events", p.Name), p)
}
