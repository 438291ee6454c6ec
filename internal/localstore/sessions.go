package localstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
)

// LoginInput is the local-mode login request. There is no external identity
// provider here: the role is chosen directly at login, and admin access is
// gated by a fixed shared access code compared verbatim.
type LoginInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	AccessCode string `json:"accessCode"`
}

// session is an issued local credential
type session struct {
	subjectID string
	name      string
	email     string
	createdAt time.Time
}

// SessionManager issues opaque local session tokens and verifies them as an
// identity.Verifier, so the shared bearer middleware works unchanged in
// local mode. Sessions are in-memory only; the account records they map to
// live in the mirrored store.
type SessionManager struct {
	users      repository.UserRepository
	accessCode string
	log        zerolog.Logger

	mu       sync.Mutex
	sessions map[string]session
}

// NewSessionManager creates a session manager over the store's user records
func NewSessionManager(users repository.UserRepository, adminAccessCode string, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		users:      users,
		accessCode: adminAccessCode,
		log:        log.With().Str("component", "sessions").Logger(),
		sessions:   make(map[string]session),
	}
}

// Login validates the request, creates or updates the local account with the
// chosen role, and issues a session token
func (m *SessionManager) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", nil, apperrors.MissingField("name")
	}

	role := models.Role(strings.TrimSpace(input.Role))
	if !models.ValidRoles[role] {
		return "", nil, apperrors.Validation("role", "role must be one of: student, eventHead, admin")
	}
	if role == models.RoleAdmin {
		if m.accessCode == "" || input.AccessCode != m.accessCode {
			return "", nil, apperrors.Forbidden("You do not have permission to perform this action.")
		}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return "", nil, apperrors.MissingField("email")
	}
	// the email anchors the account across logins
	subjectID := "local:" + email

	now := time.Now().UTC()
	user, err := m.users.GetBySubject(ctx, subjectID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user = &models.User{
			SubjectID:   subjectID,
			Email:       email,
			DisplayName: name,
			LastLoginAt: now,
		}
	}
	// the chosen role is applied verbatim; this is the local mode's rule
	user.Role = role
	user.DisplayName = name
	user.LastLoginAt = now
	if err := m.users.Upsert(ctx, user); err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = session{
		subjectID: subjectID,
		name:      name,
		email:     email,
		createdAt: now,
	}
	m.mu.Unlock()

	m.log.Info().Str("subject_id", subjectID).Str("role", string(role)).Msg("Local session issued")
	return token, user, nil
}

// Verify resolves a session token to the identity it was issued for
func (m *SessionManager) Verify(_ context.Context, token string) (*identity.Identity, error) {
	m.mu.Lock()
	sess, ok := m.sessions[token]
	m.mu.Unlock()
	if !ok {
		return nil, apperrors.Unauthorized("Invalid or expired authentication token")
	}
	return &identity.Identity{
		SubjectID:   sess.subjectID,
		Email:       sess.email,
		DisplayName: sess.name,
	}, nil
}
