package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type getBonusStatusRequest struct {
	Program string `params:"program"`
	Address string `query:"address"`
}

func (r *getBonusStatusRequest) Validate() error {
	var errList []error
	if r.Program == "" {
		errList = append(errList, errors.New("'program' is required"))
	}
	if r.Address == "" {
		errList = append(errList, errors.New("'address' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getBonusStatusResult struct {
	Program          string `json:"program"`
	CanClaim         bool   `json:"canClaim"`
	RemainingSeconds int64  `json:"remainingSeconds"`
	Reason           string `json:"reason,omitempty"`
}

type getBonusStatusResponse = HttpResponse[getBonusStatusResult]

func (h *HttpHandler) GetBonusStatus(ctx *fiber.Ctx) (err error) {
	var req getBonusStatusRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	status, err := h.usecase.BonusStatus(ctx.UserContext(), req.Program, req.Address, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during BonusStatus")
	}

	resp := getBonusStatusResponse{
		Result: lo.ToPtr(getBonusStatusResult{
			Program:          status.ProgramID,
			CanClaim:         status.CanClaim,
			RemainingSeconds: int64(status.Remaining / time.Second),
			Reason:           status.Reason,
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
