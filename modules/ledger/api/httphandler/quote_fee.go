package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type quoteFeeRequest struct {
	Amount      string `json:"amount"`
	HasReferral bool   `json:"hasReferral"`
}

type quoteFeeResponse = HttpResponse[feeSplitResult]

func (h *HttpHandler) QuoteFee(ctx *fiber.Ctx) (err error) {
	var req quoteFeeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	amount, err := parseOptionalAmount("amount", req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	split, err := h.usecase.QuoteFee(ctx.UserContext(), amount, req.HasReferral)
	if err != nil {
		return errors.Wrap(err, "error during QuoteFee")
	}

	resp := quoteFeeResponse{
		Result: lo.ToPtr(mapFeeSplitToResult(split)),
	}
	return errors.WithStack(ctx.JSON(resp))
}
