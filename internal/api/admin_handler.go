package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/service"
)

// AdminHandler handles the moderation queue and transition endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// GetQueues handles GET /api/admin/queues
func (h *AdminHandler) GetQueues(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := h.services.Event.ListPending(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	posts, err := h.services.Post.ListPending(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":          events,
		"hackfinderPosts": posts,
	})
}

// ApproveEvent handles POST /api/admin/events/:eventId/approve
func (h *AdminHandler) ApproveEvent(c *gin.Context) {
	event, err := h.services.Event.Approve(c.Request.Context(), actorFrom(c), c.Param("eventId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// RejectEvent handles POST /api/admin/events/:eventId/reject
func (h *AdminHandler) RejectEvent(c *gin.Context) {
	event, err := h.services.Event.Reject(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent handles DELETE /api/admin/events/:eventId
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	event, err := h.services.Event.Delete(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ApprovePost handles POST /api/admin/hackfinder/:postId/approve
func (h *AdminHandler) ApprovePost(c *gin.Context) {
	post, err := h.services.Post.Approve(c.Request.Context(), actorFrom(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// RejectPost handles POST /api/admin/hackfinder/:postId/reject
func (h *AdminHandler) RejectPost(c *gin.Context) {
	post, err := h.services.Post.Reject(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles DELETE /api/admin/hackfinder/:postId
func (h *AdminHandler) DeletePost(c *gin.Context) {
	post, err := h.services.Post.Delete(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}
