package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/service"
)

const (
	ctxIdentity = "identity"
	ctxUser     = "user"
)

// authenticate verifies the bearer credential and loads the internal
// account record for the request. A missing or malformed Authorization
// header is rejected before any verification is attempted.
func authenticate(verifier identity.Verifier, accounts service.AccountService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := identity.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}

		user, err := accounts.UserBySubject(c.Request.Context(), ident.SubjectID)
		if err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}

		c.Set(ctxIdentity, ident)
		c.Set(ctxUser, user)
		c.Next()
	}
}

// requireRole gates a route on the account's role. The role check lives
// here, at the boundary, not inside the moderation transitions.
func requireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		if actor.User == nil || !roleIn(actor.User.Role, roles) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleIn(role models.Role, roles []models.Role) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// actorFrom assembles the request principal set by the authenticate middleware
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Get(ctxIdentity); ok {
		if ident, ok := v.(*identity.Identity); ok {
			actor.Identity = ident
		}
	}
	if v, ok := c.Get(ctxUser); ok {
		if user, ok := v.(*models.User); ok {
			actor.User = user
		}
	}
	return actor
}
