package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/pkg/middleware/requestcontext"
	"github.com/samber/lo"
)

type recordViewRequest struct {
	ResourceType string `params:"type"`
	ResourceID   string `params:"id"`
	TimeSpentMs  int64  `json:"timeSpentMs"`
	Referrer     string `json:"referrer"`
}

func (r *recordViewRequest) Validate() error {
	var errList []error
	if r.ResourceType == "" {
		errList = append(errList, errors.New("'type' is required"))
	}
	if r.ResourceID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	if r.TimeSpentMs < 0 {
		errList = append(errList, errors.New("'timeSpentMs' must not be negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type recordViewResult struct {
	Counted    bool   `json:"counted"`
	TotalViews uint64 `json:"totalViews"`
}

type recordViewResponse = HttpResponse[recordViewResult]

func (h *HttpHandler) RecordView(ctx *fiber.Ctx) (err error) {
	var req recordViewRequest
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

	clientIP := requestcontext.GetClientIP(ctx.UserContext())
	if clientIP == "" {
		clientIP = ctx.IP()
	}

	result, err := h.usecase.RecordView(ctx.UserContext(), req.ResourceType, req.ResourceID, clientIP, ledger.ViewMeta{
		TimeSpent: time.Duration(req.TimeSpentMs) * time.Millisecond,
		Referrer:  req.Referrer,
	}, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "error during RecordView")
	}

	resp := recordViewResponse{
		Result: lo.ToPtr(recordViewResult{
			Counted:    result.Counted,
			TotalViews: result.TotalViews,
		}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
