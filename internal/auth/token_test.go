package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/gamerhub/marketplace/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	in := domain.Identity{ID: "user-1", Username: "n00bslayer", Email: "slayer@example.com"}

	token, exp, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	out, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if *out != in {
		t.Fatalf("identity mismatch: got %+v want %+v", *out, in)
	}
}

func TestCodec_DecodeFailures(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	valid, _, err := codec.Encode(domain.Identity{ID: "user-1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	expiredCodec := NewCodec(testSecret, time.Minute)
	expiredCodec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredCodec.Encode(domain.Identity{ID: "user-1"})
	if err != nil {
		t.Fatalf("Encode expired: %v", err)
	}

	otherSecret, _, err := NewCodec("another-secret-another-secret-xx", time.Hour).Encode(domain.Identity{ID: "user-1"})
	if err != nil {
		t.Fatalf("Encode other: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	withoutExpiry, err := noExp.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign without exp: %v", err)
	}

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"absent", "", ErrCredentialAbsent},
		{"blank", "   ", ErrCredentialAbsent},
		{"malformed", "not-a-jwt", ErrCredentialInvalid},
		{"tampered", tamper(valid), ErrCredentialInvalid},
		{"wrong secret", otherSecret, ErrCredentialInvalid},
		{"alg none", unsigned, ErrCredentialInvalid},
		{"missing exp", withoutExpiry, ErrCredentialInvalid},
		{"expired", expired, ErrCredentialExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := codec.Decode(tc.token)
			if identity != nil {
				t.Fatalf("expected no identity, got %+v", identity)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("%v should reduce to ErrUnauthenticated", err)
			}
		})
	}
}

func TestCodec_EncodeRequiresID(t *testing.T) {
	if _, _, err := NewCodec(testSecret, time.Hour).Encode(domain.Identity{Email: "x@y.z"}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestCodec_TokensCarryUniqueIDs(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	a, _, _ := codec.Encode(domain.Identity{ID: "user-1"})
	b, _, _ := codec.Encode(domain.Identity{ID: "user-1"})
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
	if strings.Count(a, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", a)
	}
}

func tamper(token string) string {
	dot := strings.LastIndex(token, ".")
	replacement := "A"
	if token[dot+1] == 'A' {
		replacement = "B"
	}
	return token[:dot+1] + replacement + token[dot+2:]
}
