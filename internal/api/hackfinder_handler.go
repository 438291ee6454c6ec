package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/service"
)

// HackFinderHandler handles hackfinder post endpoints
type HackFinderHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewHackFinderHandler creates a new HackFinderHandler
func NewHackFinderHandler(services *service.Services, log zerolog.Logger) *HackFinderHandler {
	return &HackFinderHandler{
		services: services,
		log:      log.With().Str("handler", "hackfinder").Logger(),
	}
}

// ListPublished handles GET /api/hackfinder
func (h *HackFinderHandler) ListPublished(c *gin.Context) {
	posts, err := h.services.Post.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// Create handles POST /api/hackfinder
func (h *HackFinderHandler) Create(c *gin.Context) {
	var input models.HackFinderPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.services.Post.Submit(c.Request.Context(), actorFrom(c), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}
