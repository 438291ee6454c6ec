package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
)

// respondError maps an error to its HTTP status. Validation, auth,
// permission, and not-found errors surface their message verbatim; anything
// else is genericized to the caller while the true error is logged.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
		case errors.Is(appErr, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
		case errors.Is(appErr, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
		case errors.Is(appErr, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
		default:
			log.Error().Err(err).Msg("Unhandled application error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": genericServerError})
		}
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": genericServerError})
}

const genericServerError = "Something went wrong on the server. Please try again later."
