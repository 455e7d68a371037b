package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// GuardDecision labels the outcome of a guard evaluation.
type GuardDecision string

const (
	DecisionPublic        GuardDecision = "public"
	DecisionAuthenticated GuardDecision = "authenticated"
	DecisionRedirected    GuardDecision = "redirected"
)

// DecisionRecorder observes guard outcomes.
type DecisionRecorder interface {
	RecordGuardDecision(decision GuardDecision)
}

// GuardConfig wires the session guard.
type GuardConfig struct {
	Codec              *Codec
	Routes             *RouteClassifier
	CookieName         string
	LoginPath          string
	RedirectWithReturn bool
	Logger             *zap.Logger
	Recorder           DecisionRecorder
}

// SessionGuard redirects anonymous requests for protected pages to the login page.
type SessionGuard struct {
	cfg GuardConfig
}

// NewSessionGuard constructs the guard.
func NewSessionGuard(cfg GuardConfig) *SessionGuard {
	if cfg.CookieName == "" {
		cfg.CookieName = "session_token"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &SessionGuard{cfg: cfg}
}

// Handle enforces the protected path policy. Absent, malformed and expired
// credentials all produce the same redirect.
func (g *SessionGuard) Handle(c *fiber.Ctx) error {
	if !g.cfg.Routes.RequiresAuth(c.Path()) {
		g.record(DecisionPublic)
		return c.Next()
	}

	identity, err := g.cfg.Codec.Decode(g.Token(c))
	if err != nil {
		g.cfg.Logger.Debug("session guard redirect",
			zap.String("path", c.Path()),
			zap.String("reason", err.Error()))
		g.record(DecisionRedirected)
		return c.Redirect(g.loginLocation(c), fiber.StatusFound)
	}

	attachIdentity(c, identity)
	g.record(DecisionAuthenticated)
	return c.Next()
}

// Authenticate attaches an identity when the request carries a valid token.
// Anonymous requests continue untouched.
func (g *SessionGuard) Authenticate(c *fiber.Ctx) error {
	if identity, err := g.cfg.Codec.Decode(g.Token(c)); err == nil {
		attachIdentity(c, identity)
	}
	return c.Next()
}

// Token extracts the raw credential from the session cookie, falling back to a bearer header.
func (g *SessionGuard) Token(c *fiber.Ctx) string {
	if raw := c.Cookies(g.cfg.CookieName); raw != "" {
		return raw
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (g *SessionGuard) loginLocation(c *fiber.Ctx) string {
	if !g.cfg.RedirectWithReturn {
		return g.cfg.LoginPath
	}
	return g.cfg.LoginPath + "?next=" + url.QueryEscape(c.OriginalURL())
}

func (g *SessionGuard) record(decision GuardDecision) {
	if g.cfg.Recorder != nil {
		g.cfg.Recorder.RecordGuardDecision(decision)
	}
}

// RequireIdentity rejects API requests without an identity with 401.
// It must run after Authenticate or Handle.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromFiber(c); !ok {
			return apperrors.NewUnauthorized(ErrUnauthenticated.Error())
		}
		return c.Next()
	}
}
