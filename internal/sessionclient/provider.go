// Package sessionclient holds the client-side view of the current session.
// A Provider fetches the identity once on construction and keeps it until
// logout or an explicit refresh.
package sessionclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/config"
	"github.com/gamerhub/marketplace/internal/domain"
)

// State is a snapshot of the provider.
type State struct {
	User    *domain.Identity
	Loading bool
}

// Observer receives every state transition.
type Observer func(State)

// Options tune a Provider.
type Options struct {
	// HTTPClient defaults to a client without a cookie jar.
	HTTPClient *http.Client
	// Token is sent as a bearer credential when set.
	Token string
	// Timeout overrides cfg.Timeout() for each request.
	Timeout time.Duration
	// OnChange is registered before the first fetch starts.
	OnChange Observer
}

// Provider is the single source of truth for the current user.
type Provider struct {
	baseURL      string
	identityPath string
	logoutPath   string
	timeout      time.Duration
	client       *http.Client
	logger       *zap.Logger

	mu        sync.Mutex
	token     string
	state     State
	inflight  int
	epoch     uint64
	observers []Observer

	ready     chan struct{}
	readyOnce sync.Once
}

// New builds a provider and starts exactly one identity fetch. The provider
// reports Loading until that fetch settles.
func New(ctx context.Context, cfg config.SessionClientConfig, logger *zap.Logger, opts Options) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	p := &Provider{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		identityPath: cfg.IdentityPath,
		logoutPath:   cfg.LogoutPath,
		timeout:      timeout,
		client:       client,
		token:        opts.Token,
		logger:       logger.Named("sessionclient"),
		ready:        make(chan struct{}),
	}
	if opts.OnChange != nil {
		p.observers = append(p.observers, opts.OnChange)
	}

	epoch := p.begin()
	go func() {
		p.settle(epoch, p.fetch(ctx))
		p.readyOnce.Do(func() { close(p.ready) })
	}()
	return p
}

// OnChange registers an observer for subsequent transitions.
func (p *Provider) OnChange(fn Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// State returns the current snapshot.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// User returns the current identity, or nil when anonymous.
func (p *Provider) User() *domain.Identity {
	return p.State().User
}

// Wait blocks until the initial fetch settles or ctx is done.
func (p *Provider) Wait(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh repeats the fetch-and-set sequence. Concurrent refreshes are not
// de-duplicated; the last one to settle wins.
func (p *Provider) Refresh(ctx context.Context) *domain.Identity {
	epoch := p.begin()
	user := p.fetch(ctx)
	p.settle(epoch, user)
	return user
}

// Logout calls the logout endpoint and clears the local user and bearer token
// whatever the outcome. Fetches started before the call cannot restore the user.
func (p *Provider) Logout(ctx context.Context) {
	if err := p.postLogout(ctx); err != nil {
		p.logger.Warn("logout request failed", zap.Error(err))
	}

	p.mu.Lock()
	p.epoch++
	p.token = ""
	p.state.User = nil
	snap, observers := p.snapshot(), p.copyObservers()
	p.mu.Unlock()
	notify(observers, snap)
}

func (p *Provider) begin() uint64 {
	p.mu.Lock()
	p.inflight++
	wasLoading := p.state.Loading
	p.state.Loading = true
	epoch := p.epoch
	snap, observers := p.snapshot(), p.copyObservers()
	p.mu.Unlock()

	if !wasLoading {
		notify(observers, snap)
	}
	return epoch
}

func (p *Provider) settle(epoch uint64, user *domain.Identity) {
	p.mu.Lock()
	p.inflight--
	if epoch == p.epoch {
		p.state.User = user
	}
	p.state.Loading = p.inflight > 0
	snap, observers := p.snapshot(), p.copyObservers()
	p.mu.Unlock()
	notify(observers, snap)
}

func (p *Provider) fetch(ctx context.Context) *domain.Identity {
	user, err := p.getIdentity(ctx)
	if err != nil {
		p.logger.Debug("identity fetch failed", zap.Error(err))
		return nil
	}
	return user
}

func (p *Provider) getIdentity(ctx context.Context) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+p.identityPath, nil)
	if err != nil {
		return nil, err
	}
	p.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("identity endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		User *domain.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if body.User == nil || body.User.ID == "" {
		return nil, errors.New("identity payload without user")
	}
	return body.User, nil
}

func (p *Provider) postLogout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+p.logoutPath, nil)
	if err != nil {
		return err
	}
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func (p *Provider) authorize(req *http.Request) {
	p.mu.Lock()
	token := p.token
	p.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (p *Provider) snapshot() State {
	s := State{Loading: p.state.Loading}
	if p.state.User != nil {
		u := *p.state.User
		s.User = &u
	}
	return s
}

func (p *Provider) copyObservers() []Observer {
	return append([]Observer(nil), p.observers...)
}

func notify(observers []Observer, s State) {
	for _, fn := range observers {
		fn(s)
	}
}
