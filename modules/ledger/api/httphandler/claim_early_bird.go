package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type claimEarlyBirdRequest struct {
	Address string `json:"address"`
}

func (r *claimEarlyBirdRequest) Validate() error {
	var errList []error
	if r.Address == "" {
		errList = append(errList, errors.New("'address' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type claimEarlyBirdResult struct {
	Granted   bool  `json:"granted"`
	ClaimedAt int64 `json:"claimedAt"` // unix timestamp
}

type claimEarlyBirdResponse = HttpResponse[claimEarlyBirdResult]

func (h *HttpHandler) ClaimEarlyBird(ctx *fiber.Ctx) (err error) {
	var req claimEarlyBirdRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	claim, err := h.usecase.ClaimEarlyBird(ctx.UserContext(), req.Address, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during ClaimEarlyBird")
	}

	resp := claimEarlyBirdResponse{
		Result: lo.ToPtr(claimEarlyBirdResult{
			Granted:   true,
			ClaimedAt: claim.ClaimedAt.Unix(),
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
