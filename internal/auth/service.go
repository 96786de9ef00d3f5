package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/radif/mediadrop/internal/logger"
)

// DefaultSessionTTL is how long a session lives. Sessions never slide.
const DefaultSessionTTL = 7 * 24 * time.Hour

// sessionTokenBytes gives 256 bits of entropy per token.
const sessionTokenBytes = 32

// ErrNoPassword is reported when ADMIN_PASSWORD is not configured.
var ErrNoPassword = errors.New("admin password is not configured")

// Service contains the session logic: password check and token lifecycle.
type Service struct {
	repo     *Repository
	password []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a Service. An empty password makes every login fail.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewService(repo *Repository, password string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		repo:     repo,
		password: []byte(password),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests to cross the TTL.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TTL returns the session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Configured reports whether a password is set.
func (s *Service) Configured() error {
	if len(s.password) == 0 {
		return ErrNoPassword
	}
	return nil
}

// ValidatePassword compares candidate with the configured secret in constant
// time. Length is not treated as secret: a length mismatch returns early.
func (s *Service) ValidatePassword(candidate string) bool {
	if len(s.password) == 0 {
		logger.Error().Err(ErrNoPassword).Msg("login rejected")
		return false
	}

	in := []byte(candidate)
	if len(in) != len(s.password) {
		return false
	}
	return subtle.ConstantTimeCompare(in, s.password) == 1
}

// CreateSession issues a new random token and stores its hash.
// Only a failing system RNG returns an error.
func (s *Service) CreateSession() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	now := s.now()
	s.repo.Insert(hashToken(token), now.Add(s.ttl), now)
	return token, nil
}

// IsValidSession reports whether token belongs to a live session.
func (s *Service) IsValidSession(token string) bool {
	if token == "" {
		return false
	}
	return s.repo.Lookup(hashToken(token), s.now())
}

// DestroySession revokes token. Unknown tokens are ignored.
func (s *Service) DestroySession(token string) {
	if token == "" {
		return
	}
	s.repo.Delete(hashToken(token))
}

// hashToken returns the SHA-256 hex digest stored in place of the raw token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
