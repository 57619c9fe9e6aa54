package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type mintRequest struct {
	ID       string `params:"id"`
	Referral string `json:"referral"`
}

func (r *mintRequest) Validate() error {
	var errList []error
	if r.ID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type mintResult struct {
	NFTID  string           `json:"nftId"`
	Window mintWindowResult `json:"mintWindow"`
	Fee    feeSplitResult   `json:"fee"`
}

type mintResponse = HttpResponse[mintResult]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	var req mintRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.Mint(ctx.UserContext(), req.ID, req.Referral != "", time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during Mint")
	}

	resp := mintResponse{
		Result: lo.ToPtr(mintResult{
			NFTID:  result.Window.NFTID,
			Window: mapMintWindowToResult(result.Window, result.Status),
			Fee:    mapFeeSplitToResult(result.Fee),
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
