package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/localstore"
)

// LocalAuthHandler handles the local-first login endpoint. It only exists in
// the local deployment, where there is no external identity provider and the
// role is chosen at login.
type LocalAuthHandler struct {
	sessions *localstore.SessionManager
	log      zerolog.Logger
}

// NewLocalAuthHandler creates a new LocalAuthHandler
func NewLocalAuthHandler(sessions *localstore.SessionManager, log zerolog.Logger) *LocalAuthHandler {
	return &LocalAuthHandler{
		sessions: sessions,
		log:      log.With().Str("handler", "local-auth").Logger(),
	}
}

// Login handles POST /api/auth/login
func (h *LocalAuthHandler) Login(c *gin.Context) {
	var input localstore.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.sessions.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
