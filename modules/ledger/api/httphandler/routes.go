package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Post("/fees/quote", h.QuoteFee)

	r.Post("/nfts", h.RegisterNFT)
	r.Post("/nfts/:id/mints", h.Mint)
	r.Get("/nfts/:id/mint-window", h.GetMintWindow)
	r.Post("/nfts/:id/listings", h.CreateListing)
	r.Get("/nfts/:id/listings", h.GetListings)

	r.Post("/listings/:id/buy", h.BuyListing)
	r.Post("/listings/:id/cancel", h.CancelListing)

	r.Post("/views/:type/:id", h.RecordView)
	r.Get("/views/:type/:id", h.GetViews)
	r.Delete("/views/:type/:id", h.DeleteViews)

	r.Post("/bonus/early-bird/claims", h.ClaimEarlyBird)
	r.Post("/bonus/wheel/spins", h.SpinWheel)
	r.Get("/bonus/:program/status", h.GetBonusStatus)
	return nil
}
