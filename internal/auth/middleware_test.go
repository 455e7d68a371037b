package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/domain"
)

type decisionLog struct {
	decisions []GuardDecision
}

func (d *decisionLog) RecordGuardDecision(decision GuardDecision) {
	d.decisions = append(d.decisions, decision)
}

func newGuardApp(t *testing.T, withReturn bool) (*fiber.App, *Codec, *decisionLog, *int) {
	t.Helper()
	codec := NewCodec(testSecret, time.Hour)
	log := &decisionLog{}
	guard := NewSessionGuard(GuardConfig{
		Codec:              codec,
		Routes:             NewRouteClassifier("/dashboard/*"),
		CookieName:         "session_token",
		LoginPath:          "/login",
		RedirectWithReturn: withReturn,
		Recorder:           log,
	})

	hits := 0
	app := fiber.New()
	app.Use(guard.Handle)
	handler := func(c *fiber.Ctx) error {
		hits++
		identity, ok := IdentityFromFiber(c)
		if !ok {
			return c.SendString("anonymous")
		}
		fromCtx, ok := IdentityFromContext(c.UserContext())
		if !ok || fromCtx.ID != identity.ID {
			return c.Status(http.StatusInternalServerError).SendString("context mismatch")
		}
		return c.SendString(identity.ID)
	}
	app.Get("/login", handler)
	app.Get("/listings", handler)
	app.Get("/dashboard/*", handler)
	return app, codec, log, &hits
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestSessionGuard_PublicPathsPassThrough(t *testing.T) {
	app, _, log, hits := newGuardApp(t, false)

	for _, target := range []string{"/login", "/listings"} {
		for _, cookie := range []string{"", "garbage"} {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: cookie})
			}
			resp, body := doRequest(t, app, req)
			if resp.StatusCode != http.StatusOK || body != "anonymous" {
				t.Fatalf("%s with cookie %q: got %d %q", target, cookie, resp.StatusCode, body)
			}
		}
	}
	if *hits != 4 {
		t.Fatalf("expected 4 handler hits, got %d", *hits)
	}
	for _, d := range log.decisions {
		if d != DecisionPublic {
			t.Fatalf("unexpected decision %s", d)
		}
	}
}

func TestSessionGuard_RedirectsAnonymous(t *testing.T) {
	app, _, log, hits := newGuardApp(t, false)

	expiredCodec := NewCodec(testSecret, time.Minute)
	expiredCodec.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := expiredCodec.Encode(domain.Identity{ID: "user-1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for name, cookie := range map[string]string{"absent": "", "malformed": "abc.def", "expired": expired} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
			if cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: cookie})
			}
			resp, _ := doRequest(t, app, req)
			if resp.StatusCode != http.StatusFound {
				t.Fatalf("expected 302, got %d", resp.StatusCode)
			}
			if loc := resp.Header.Get("Location"); loc != "/login" {
				t.Fatalf("expected redirect to /login, got %q", loc)
			}
		})
	}
	if *hits != 0 {
		t.Fatalf("protected handler must not run, ran %d times", *hits)
	}
	if len(log.decisions) != 3 || log.decisions[0] != DecisionRedirected {
		t.Fatalf("unexpected decisions %v", log.decisions)
	}
}

func TestSessionGuard_ForwardsAuthenticated(t *testing.T) {
	app, codec, log, _ := newGuardApp(t, false)
	token, _, err := codec.Encode(domain.Identity{ID: "user-7", Email: "seven@example.com"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/wallet", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	resp, body := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK || body != "user-7" {
		t.Fatalf("expected identity to reach handler, got %d %q", resp.StatusCode, body)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard/wallet", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, body = doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK || body != "user-7" {
		t.Fatalf("bearer header: got %d %q", resp.StatusCode, body)
	}

	if log.decisions[0] != DecisionAuthenticated {
		t.Fatalf("expected authenticated decision, got %v", log.decisions)
	}
}

func TestSessionGuard_RedirectWithReturn(t *testing.T) {
	app, _, _, _ := newGuardApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/settings?tab=2", nil)
	resp, _ := doRequest(t, app, req)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	want := "/login?next=%2Fdashboard%2Fsettings%3Ftab%3D2"
	if loc := resp.Header.Get("Location"); loc != want {
		t.Fatalf("expected %q, got %q", want, loc)
	}
}

func TestRequireIdentity(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	guard := NewSessionGuard(GuardConfig{Codec: codec, Routes: NewRouteClassifier()})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(http.StatusUnauthorized).SendString(err.Error())
		},
	})
	app.Get("/api/private", guard.Authenticate, RequireIdentity(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/private", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	token, _, _ := codec.Encode(domain.Identity{ID: "user-1"})
	req := httptest.NewRequest(http.MethodGet, "/api/private", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	resp, body := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("expected ok, got %d %q", resp.StatusCode, body)
	}
}
