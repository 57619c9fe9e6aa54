package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/samber/lo"
)

type getViewsRequest struct {
	ResourceType string `params:"type"`
	ResourceID   string `params:"id"`
}

func (r *getViewsRequest) Validate() error {
	var errList []error
	if r.ResourceType == "" {
		errList = append(errList, errors.New("'type' is required"))
	}
	if r.ResourceID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type viewEntryResult struct {
	At          int64  `json:"at"` // unix timestamp
	TimeSpentMs int64  `json:"timeSpentMs"`
	Referrer    string `json:"referrer,omitempty"`
}

type getViewsResult struct {
	TotalViews uint64            `json:"totalViews"`
	Recent     []viewEntryResult `json:"recent"`
}

type getViewsResponse = HttpResponse[getViewsResult]

func (h *HttpHandler) GetViews(ctx *fiber.Ctx) (err error) {
	var req getViewsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.Views(ctx.UserContext(), req.ResourceType, req.ResourceID)
	if err != nil {
		return errors.Wrap(err, "error during Views")
	}

	resp := getViewsResponse{
		Result: lo.ToPtr(getViewsResult{
			TotalViews: result.TotalViews,
			// client IPs stay internal
			Recent: lo.Map(result.Recent, func(entry ledger.ViewEntry, _ int) viewEntryResult {
				return viewEntryResult{
					At:          entry.At.Unix(),
					TimeSpentMs: entry.TimeSpent.Milliseconds(),
					Referrer:    entry.Referrer,
				}
			}),
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
