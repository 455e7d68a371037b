package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/domain"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

func currentIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromFiber(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized(auth.ErrUnauthenticated.Error())
	}
	return *identity, nil
}
