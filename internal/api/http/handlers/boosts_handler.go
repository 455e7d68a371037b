package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/api/dto"
	"github.com/gamerhub/marketplace/internal/service"
)

// BoostsHandler exposes the boosting request and bidding endpoints.
type BoostsHandler struct {
	boosts *service.BoostService
}

// NewBoostsHandler constructs handler.
func NewBoostsHandler(boosts *service.BoostService) *BoostsHandler {
	return &BoostsHandler{boosts: boosts}
}

// Create handles POST /api/boosts.
func (h *BoostsHandler) Create(c *fiber.Ctx) error {
	requester, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.BoostRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	boost, err := h.boosts.CreateRequest(c.UserContext(), requester, service.CreateBoostInput{
		Game:        req.Game,
		CurrentRank: req.CurrentRank,
		TargetRank:  req.TargetRank,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBoostResponse(*boost)})
}

// Get handles GET /api/boosts/:id.
func (h *BoostsHandler) Get(c *fiber.Ctx) error {
	boost, err := h.boosts.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBoostResponse(*boost)})
}

// Close handles POST /api/boosts/:id/close.
func (h *BoostsHandler) Close(c *fiber.Ctx) error {
	requester, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.boosts.Close(c.UserContext(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "closed"}})
}

// ListBids handles GET /api/boosts/:id/bids.
func (h *BoostsHandler) ListBids(c *fiber.Ctx) error {
	bids, err := h.boosts.ListBids(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	out := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, dto.NewBidResponse(b))
	}
	return c.JSON(fiber.Map{"data": out})
}

// PlaceBid handles POST /api/boosts/:id/bids.
func (h *BoostsHandler) PlaceBid(c *fiber.Ctx) error {
	bidder, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.BidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	bid, err := h.boosts.PlaceBid(c.UserContext(), bidder, c.Params("id"), service.PlaceBidInput{
		AmountCents:    req.AmountCents,
		EstimatedHours: req.EstimatedHours,
		Message:        req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBidResponse(*bid)})
}
