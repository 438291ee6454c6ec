package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/service"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(services *service.Services, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		services: services,
		log:      log.With().Str("handler", "profile").Logger(),
	}
}

// GetMyProfile handles GET /api/profile/me, creating the profile lazily on
// first access
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.services.Profile.GetOrCreate(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateMyProfile handles PUT /api/profile/me. Only allow-listed fields
// present in the body are applied.
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.services.Profile.Update(c.Request.Context(), actorFrom(c), &update)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
