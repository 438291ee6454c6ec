package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campus-events-api/internal/apperrors"
)

// KeySource supplies the provider's current signing keys, keyed by key id
type KeySource interface {
	Keys(ctx context.Context) (map[string]*rsa.PublicKey, error)
}

// TokenVerifier verifies RS256 identity assertions against the provider's
// signing keys, checking signature, expiry, and (when configured) issuer
// and audience.
type TokenVerifier struct {
	keys     KeySource
	parser   *jwt.Parser
	issuer   string
	audience string
}

// assertionClaims are the identity fields carried by the assertion
type assertionClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewTokenVerifier creates a verifier. Empty issuer or audience disables
// that check.
func NewTokenVerifier(keys KeySource, issuer, audience string) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &TokenVerifier{
		keys:     keys,
		parser:   jwt.NewParser(opts...),
		issuer:   issuer,
		audience: audience,
	}
}

// Verify validates the raw token and returns the asserted identity
func (v *TokenVerifier) Verify(ctx context.Context, raw string) (*Identity, error) {
	claims := &assertionClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		keys, err := v.keys.Keys(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch signing keys: %w", err)
		}
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("no signing key for kid %q", kid)
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("authentication token has expired")
		}
		return nil, apperrors.Unauthorized("Invalid or expired authentication token")
	}

	if claims.Subject == "" {
		return nil, apperrors.Unauthorized("Invalid or expired authentication token")
	}

	return &Identity{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PictureURL:  claims.Picture,
	}, nil
}

// CertsKeySource fetches the provider's X.509 signing certificates from a
// well-known URL (a JSON object of kid -> PEM certificate) and caches them
// until the response's Cache-Control max-age elapses.
type CertsKeySource struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	cached  map[string]*rsa.PublicKey
	expires time.Time
}

var maxAgeRe = regexp.MustCompile(`max-age=(\d+)`)

// NewCertsKeySource creates a key source backed by the given certs URL
func NewCertsKeySource(url string) *CertsKeySource {
	return &CertsKeySource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Keys returns the current signing keys, refreshing the cache if stale
func (s *CertsKeySource) Keys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Now().Before(s.expires) {
		return s.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build certs request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch certs: unexpected status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return nil, fmt.Errorf("decode certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := parseCertPublicKey(pemCert)
		if err != nil {
			return nil, fmt.Errorf("parse cert %s: %w", kid, err)
		}
		keys[kid] = key
	}

	s.cached = keys
	s.expires = time.Now().Add(cacheMaxAge(resp.Header.Get("Cache-Control")))
	return keys, nil
}

func parseCertPublicKey(pemCert string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemCert))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not carry an RSA key")
	}
	return key, nil
}

func cacheMaxAge(cacheControl string) time.Duration {
	if match := maxAgeRe.FindStringSubmatch(cacheControl); match != nil {
		if seconds, err := strconv.Atoi(match[1]); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	// conservative default when the provider omits caching headers
	return 5 * time.Minute
}

// StaticKeySource serves a fixed key set; used in tests and tooling
type StaticKeySource map[string]*rsa.PublicKey

// Keys returns the fixed key set
func (s StaticKeySource) Keys(_ context.Context) (map[string]*rsa.PublicKey, error) {
	return s, nil
}
