package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/samber/lo"
)

type deleteViewsRequest struct {
	ResourceType string `params:"type"`
	ResourceID   string `params:"id"`
}

func (r *deleteViewsRequest) Validate() error {
	var errList []error
	if r.ResourceType == "" {
		errList = append(errList, errors.New("'type' is required"))
	}
	if r.ResourceID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type deleteViewsResult struct {
	Deleted bool `json:"deleted"`
}

type deleteViewsResponse = HttpResponse[deleteViewsResult]

func (h *HttpHandler) DeleteViews(ctx *fiber.Ctx) (err error) {
	var req deleteViewsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.DeleteViews(ctx.UserContext(), req.ResourceType, req.ResourceID); err != nil {
		return errors.Wrap(err, "error during DeleteViews")
	}

	resp := deleteViewsResponse{
		Result: lo.ToPtr(deleteViewsResult{Deleted: true}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
