package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/samber/lo"
)

type getListingsRequest struct {
	NFTID string `params:"id"`
}

func (r *getListingsRequest) Validate() error {
	var errList []error
	if r.NFTID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getListingsResult struct {
	// Listings holds active listings sorted by price ascending.
	Listings []listingResult `json:"listings"`
	// FloorPrice is absent when nothing is active.
	FloorPrice       *string `json:"floorPrice"`
	TotalVolume      string  `json:"totalVolume"`
	TotalActiveCount int     `json:"totalActiveCount"`
}

type getListingsResponse = HttpResponse[getListingsResult]

func (h *HttpHandler) GetListings(ctx *fiber.Ctx) (err error) {
	var req getListingsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	now := time.Now().UTC()
	book, err := h.usecase.Listings(ctx.UserContext(), req.NFTID, now)
	if err != nil {
		return errors.Wrap(err, "error during Listings")
	}

	result := getListingsResult{
		Listings: lo.Map(book.ActiveListings, func(listing *ledger.Listing, _ int) listingResult {
			return mapListingToResult(listing, now)
		}),
		TotalVolume:      book.TotalVolume.String(),
		TotalActiveCount: book.TotalActiveCount,
	}
	if book.FloorPrice != nil {
		result.FloorPrice = lo.ToPtr(book.FloorPrice.String())
	}

	resp := getListingsResponse{
		Result: lo.ToPtr(result),
	}
	return errors.WithStack(ctx.JSON(resp))
}
