package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/api/dto"
	"github.com/gamerhub/marketplace/internal/service"
)

// DashboardHandler serves the pages behind the session guard.
type DashboardHandler struct {
	wallets *service.WalletService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(wallets *service.WalletService) *DashboardHandler {
	return &DashboardHandler{wallets: wallets}
}

// Profile handles GET /dashboard/profile.
func (h *DashboardHandler) Profile(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.IdentityResponse{User: identity})
}

// Wallet handles GET /dashboard/wallet.
func (h *DashboardHandler) Wallet(c *fiber.Ctx) error {
	owner, err := currentIdentity(c)
	if err != nil {
		return err
	}
	wallet, err := h.wallets.Wallet(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WalletResponse{
		BalanceCents: wallet.BalanceCents,
		PendingCents: wallet.PendingCents,
		Currency:     wallet.Currency,
		UpdatedAt:    wallet.UpdatedAt,
	}})
}
