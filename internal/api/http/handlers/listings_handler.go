package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gamerhub/marketplace/internal/api/dto"
	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/repository"
	"github.com/gamerhub/marketplace/internal/service"
)

// ListingsHandler exposes the catalog, feedback and purchase status endpoints.
type ListingsHandler struct {
	listings *service.ListingService
	feedback *service.FeedbackService
	wallets  *service.WalletService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listings *service.ListingService, feedback *service.FeedbackService, wallets *service.WalletService) *ListingsHandler {
	return &ListingsHandler{listings: listings, feedback: feedback, wallets: wallets}
}

// List handles GET /api/listings.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	filter := repository.ListingFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if game := c.Query("game"); game != "" {
		filter.Game = &game
	}
	if category := c.Query("category"); category != "" {
		cat := domain.ListingCategory(category)
		filter.Category = &cat
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	if maxPrice := int64(c.QueryInt("max_price", 0)); maxPrice > 0 {
		filter.MaxPrice = &maxPrice
	}

	listings, err := h.listings.Browse(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, dto.NewListingResponse(l))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/listings/:id.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(*listing)})
}

// Create handles POST /api/listings.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	seller, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	listing, err := h.listings.Create(c.UserContext(), seller, service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Game:        req.Game,
		Category:    domain.ListingCategory(req.Category),
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewListingResponse(*listing)})
}

// ListFeedback handles GET /api/listings/:id/feedback.
func (h *ListingsHandler) ListFeedback(c *fiber.Ctx) error {
	items, err := h.feedback.List(c.UserContext(), c.Params("id"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.FeedbackResponse, 0, len(items))
	for _, fb := range items {
		out = append(out, dto.NewFeedbackResponse(fb))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateFeedback handles POST /api/listings/:id/feedback.
func (h *ListingsHandler) CreateFeedback(c *fiber.Ctx) error {
	author, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	fb, err := h.feedback.Create(c.UserContext(), author, c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(*fb)})
}

// PurchaseStatus handles GET /api/purchases/:listingId/status.
func (h *ListingsHandler) PurchaseStatus(c *fiber.Ctx) error {
	buyer, err := currentIdentity(c)
	if err != nil {
		return err
	}
	status, err := h.wallets.PurchaseStatus(c.UserContext(), buyer, c.Params("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": status})
}
