package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type cancelListingRequest struct {
	ID        string `params:"id"`
	Requester string `json:"requester"`
}

func (r *cancelListingRequest) Validate() error {
	var errList []error
	if r.ID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	if r.Requester == "" {
		errList = append(errList, errors.New("'requester' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type cancelListingResponse = HttpResponse[listingResult]

func (h *HttpHandler) CancelListing(ctx *fiber.Ctx) (err error) {
	var req cancelListingRequest
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
	listing, err := h.usecase.CancelListing(ctx.UserContext(), req.ID, req.Requester, now)
	if err != nil {
		return errors.Wrap(err, "error during CancelListing")
	}

	resp := cancelListingResponse{
		Result: lo.ToPtr(mapListingToResult(listing, now)),
	}
	return errors.WithStack(ctx.JSON(resp))
}
