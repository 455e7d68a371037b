package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/domain"
)

const identityLocalsKey = "auth_identity"

type identityCtxKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromContext retrieves the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*domain.Identity)
	return identity, ok && identity != nil
}

// IdentityFromFiber retrieves the identity attached to the request by the guard.
func IdentityFromFiber(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityLocalsKey).(*domain.Identity)
	return identity, ok && identity != nil
}

func attachIdentity(c *fiber.Ctx, identity *domain.Identity) {
	c.Locals(identityLocalsKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
}
