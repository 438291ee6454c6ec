package identity

import (
	"errors"
	"testing"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/models"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "scheme is case-insensitive", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
		{name: "blank token", header: "Bearer    ", wantErr: true},
		{name: "token only", header: "abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := BearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				if !errors.Is(err, apperrors.ErrUnauthorized) {
					t.Errorf("Expected an unauthorized error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BearerToken failed: %v", err)
			}
			if token != tt.want {
				t.Errorf("Expected token %q, got %q", tt.want, token)
			}
		})
	}
}

func TestRoleResolver(t *testing.T) {
	resolver := NewRoleResolver(
		[]string{" Dean@Campus.EDU ", ""},
		[]string{"head@campus.edu"},
	)

	tests := []struct {
		email string
		want  models.Role
	}{
		{"dean@campus.edu", models.RoleAdmin},
		{"DEAN@CAMPUS.EDU", models.RoleAdmin},
		{"  dean@campus.edu  ", models.RoleAdmin},
		{"head@campus.edu", models.RoleEventHead},
		{"someone@campus.edu", models.RoleStudent},
		{"", models.RoleStudent},
	}

	for _, tt := range tests {
		if got := resolver.Resolve(tt.email); got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.email, got, tt.want)
		}
	}
}

func TestRoleResolverAdminPrecedence(t *testing.T) {
	resolver := NewRoleResolver([]string{"both@campus.edu"}, []string{"both@campus.edu"})
	if got := resolver.Resolve("both@campus.edu"); got != models.RoleAdmin {
		t.Errorf("Expected admin to win over eventHead, got %s", got)
	}
}

func TestRoleResolverEmptyLists(t *testing.T) {
	resolver := NewRoleResolver(nil, nil)
	if got := resolver.Resolve("anyone@campus.edu"); got != models.RoleStudent {
		t.Errorf("Expected student, got %s", got)
	}
}
