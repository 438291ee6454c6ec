// Package identity verifies externally-issued identity assertions and
// resolves account roles from configured privilege lists. The identity
// provider itself is a black box: all this package sees is a signed,
// time-bounded token carrying the subject's id, email, name, and picture.
package identity

import (
	"context"
	"strings"

	"github.com/campus-events-api/internal/apperrors"
)

// Identity is the verified content of an identity assertion. It is
// ephemeral: consumed once per request and never persisted.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
	PictureURL  string
}

// Verifier validates a bearer credential and extracts the identity it
// asserts. Implementations must have no side effects.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// BearerToken extracts the credential from an Authorization header. The
// header must carry the verbatim "Bearer <token>" form; anything else is
// rejected before verification is attempted.
func BearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.Unauthorized("Authorization header missing or malformed")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperrors.Unauthorized("Authorization header missing or malformed")
	}
	return token, nil
}
