package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/gamerhub/marketplace/internal/domain"
)

// ErrUnauthenticated is the error every credential failure reduces to.
var ErrUnauthenticated = errors.New("unauthenticated")

// Credential failures. Callers must treat them alike; they exist for logs and tests.
var (
	ErrCredentialAbsent  = credentialError("credential absent")
	ErrCredentialInvalid = credentialError("credential invalid")
	ErrCredentialExpired = credentialError("credential expired")
)

type credentialErr struct{ msg string }

func credentialError(msg string) error { return &credentialErr{msg: msg} }

func (e *credentialErr) Error() string { return e.msg }

func (e *credentialErr) Is(target error) bool { return target == ErrUnauthenticated }

// Claims describes the session token payload.
type Claims struct {
	Username string `json:"usuario,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec for secret. A non-positive ttl falls back to one hour.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode builds and signs a token for identity.
func (c *Codec) Encode(identity domain.Identity) (string, time.Time, error) {
	if identity.ID == "" {
		return "", time.Time{}, errors.New("identity id required")
	}
	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.ttl)
	claims := &Claims{
		Username: identity.Username,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifies raw and returns the identity it carries. It never panics;
// every failure is one of the credential errors above.
func (c *Codec) Decode(raw string) (*domain.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrCredentialAbsent
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrCredentialExpired
		}
		return nil, ErrCredentialInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrCredentialInvalid
	}
	return &domain.Identity{ID: claims.Subject, Username: claims.Username, Email: claims.Email}, nil
}

// TTL returns the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
