package mocks

import (
	"context"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/identity"
)

// MockVerifier is a mock implementation of identity.Verifier. Tokens map
// directly to identities; anything unknown is rejected.
type MockVerifier struct {
	Identities  map[string]*identity.Identity
	VerifyCalls int
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		Identities: make(map[string]*identity.Identity),
	}
}

// Register maps a token to an identity and returns the identity for
// convenience in test setup.
func (m *MockVerifier) Register(token string, ident identity.Identity) *identity.Identity {
	copied := ident
	m.Identities[token] = &copied
	return &copied
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	m.VerifyCalls++
	ident, ok := m.Identities[token]
	if !ok {
		return nil, apperrors.Unauthorized("Invalid or expired authentication token")
	}
	copied := *ident
	return &copied, nil
}
