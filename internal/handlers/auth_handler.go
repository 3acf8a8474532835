package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/prestigio-api/internal/auth"
	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/response"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.cfg.AuthEnabled() {
		response.BadRequestError(c, "Authentication is not configured")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := auth.CheckPassword(h.cfg.Admin.PasswordHash, req.Password); err != nil {
		response.UnauthorizedError(c, "Invalid credentials")
		return
	}

	ttl := time.Duration(h.cfg.Admin.TokenTTLMin) * time.Minute
	token, err := auth.IssueToken(h.cfg.Admin.JWTSecret, ttl)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int(ttl.Seconds()),
	})
}
