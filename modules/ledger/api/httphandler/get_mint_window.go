package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/samber/lo"
)

type getMintWindowRequest struct {
	ID string `params:"id"`
}

func (r *getMintWindowRequest) Validate() error {
	var errList []error
	if r.ID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type mintWindowResult struct {
	State            string  `json:"state"`
	MintedSupply     uint64  `json:"mintedSupply"`
	TriggerSupply    uint64  `json:"triggerSupply"`
	RemainingSeconds *int64  `json:"remainingSeconds"`
	Deadline         *int64  `json:"deadline"` // unix timestamp
	CustomPrice      *string `json:"customPrice"`
}

func mapMintWindowToResult(window *ledger.MintWindow, status ledger.MintWindowStatus) mintWindowResult {
	result := mintWindowResult{
		State:         status.State.String(),
		MintedSupply:  window.MintedSupply,
		TriggerSupply: window.TriggerSupply,
	}
	if status.Deadline != nil {
		result.Deadline = lo.ToPtr(status.Deadline.Unix())
		result.RemainingSeconds = lo.ToPtr(int64(status.Remaining / time.Second))
	}
	if window.CustomPrice != nil {
		result.CustomPrice = lo.ToPtr(window.CustomPrice.String())
	}
	return result
}

type getMintWindowResponse = HttpResponse[mintWindowResult]

func (h *HttpHandler) GetMintWindow(ctx *fiber.Ctx) (err error) {
	var req getMintWindowRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	window, status, err := h.usecase.MintWindowStatus(ctx.UserContext(), req.ID, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during MintWindowStatus")
	}

	resp := getMintWindowResponse{
		Result: lo.ToPtr(mapMintWindowToResult(window, status)),
	}
	return errors.WithStack(ctx.JSON(resp))
}
