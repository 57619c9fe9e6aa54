package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type spinWheelRequest struct {
	Address string `json:"address"`
}

func (r *spinWheelRequest) Validate() error {
	var errList []error
	if r.Address == "" {
		errList = append(errList, errors.New("'address' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type spinWheelResult struct {
	Granted   bool   `json:"granted"`
	Reward    string `json:"reward"`
	ClaimedAt int64  `json:"claimedAt"` // unix timestamp
}

type spinWheelResponse = HttpResponse[spinWheelResult]

func (h *HttpHandler) SpinWheel(ctx *fiber.Ctx) (err error) {
	var req spinWheelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.SpinWheel(ctx.UserContext(), req.Address, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during SpinWheel")
	}

	resp := spinWheelResponse{
		Result: lo.ToPtr(spinWheelResult{
			Granted:   true,
			Reward:    result.Reward.String(),
			ClaimedAt: result.ClaimedAt.Unix(),
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
