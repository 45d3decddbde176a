package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrInvalidToken       = errors.New("identity: invalid session token")
	ErrTokenExpired       = errors.New("identity: session expired")
	ErrSecretRequired     = errors.New("identity: session secret required")
)

// Session is a verified admin session extracted from a bearer token.
type Session struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager verifies admin credentials and issues signed session
// tokens. Passwords are checked against a bcrypt hash, never a stored
// plaintext.
type SessionManager struct {
	adminEmail   string
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// SessionOption customizes a SessionManager.
type SessionOption func(*SessionManager)

// WithSessionClock overrides the time source, used by tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewSessionManager builds a manager for a single admin identity.
func NewSessionManager(adminEmail, passwordHash, secret string, ttl time.Duration, opts ...SessionOption) (*SessionManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	manager := &SessionManager{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: passwordHash,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager, nil
}

// Login checks the credentials and returns a signed token on success.
func (m *SessionManager) Login(email, password string) (string, *Session, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || normalized != m.adminEmail {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	issued := m.now()
	expires := issued.Add(m.ttl)

	claims := sessionClaims{
		Email: normalized,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   normalized,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return token, &Session{Email: normalized, IssuedAt: issued, ExpiresAt: expires}, nil
}

// Verify parses and validates a session token.
func (m *SessionManager) Verify(token string) (*Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	session := &Session{Email: claims.Email}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// HashPassword produces a bcrypt hash for configuration bootstrap.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
