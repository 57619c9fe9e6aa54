package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type buyListingRequest struct {
	ID    string `params:"id"`
	Buyer string `json:"buyer"`
}

func (r *buyListingRequest) Validate() error {
	var errList []error
	if r.ID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	if r.Buyer == "" {
		errList = append(errList, errors.New("'buyer' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type buyListingResult struct {
	Listing listingResult `json:"listing"`
	TxRef   string        `json:"txRef"`
}

type buyListingResponse = HttpResponse[buyListingResult]

func (h *HttpHandler) BuyListing(ctx *fiber.Ctx) (err error) {
	var req buyListingRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	now := time.Now().UTC()
	result, err := h.usecase.BuyListing(ctx.UserContext(), req.ID, req.Buyer, now)
	if err != nil {
		return errors.Wrap(err, "error during BuyListing")
	}

	resp := buyListingResponse{
		Result: lo.ToPtr(buyListingResult{
			Listing: mapListingToResult(result.Listing, now),
			TxRef:   result.TxRef,
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
