package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/service"
)

// AuthHandler handles account sync endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// SyncAccount handles POST /api/auth/sync: it reconciles the verified
// identity with the internal user and profile records
func (h *AuthHandler) SyncAccount(c *gin.Context) {
	actor := actorFrom(c)

	user, profile, err := h.services.Account.Sync(c.Request.Context(), actor.Identity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}
