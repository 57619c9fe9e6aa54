package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/usecase"
	"github.com/samber/lo"
)

type registerNFTRequest struct {
	ID           string     `json:"id"`
	CustomPrice  string     `json:"customPrice"`
	MintDeadline *time.Time `json:"mintDeadline"`
}

func (r *registerNFTRequest) Validate() error {
	var errList []error
	if r.ID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	if r.MintDeadline != nil && r.CustomPrice == "" {
		errList = append(errList, errors.New("'mintDeadline' requires 'customPrice'"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type registerNFTResult struct {
	NFTID     string           `json:"nftId"`
	Window    mintWindowResult `json:"mintWindow"`
	CreatedAt int64            `json:"createdAt"` // unix timestamp
}

type registerNFTResponse = HttpResponse[registerNFTResult]

func (h *HttpHandler) RegisterNFT(ctx *fiber.Ctx) (err error) {
	var req registerNFTRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	customPrice, err := parseOptionalAmount("customPrice", req.CustomPrice)
	if err != nil {
		return errors.WithStack(err)
	}

	now := time.Now().UTC()
	window, err := h.usecase.RegisterNFT(ctx.UserContext(), usecase.RegisterNFTParams{
		NFTID:        req.ID,
		CustomPrice:  customPrice,
		MintDeadline: req.MintDeadline,
	}, now)
	if err != nil {
		return errors.Wrap(err, "error during RegisterNFT")
	}

	resp := registerNFTResponse{
		Result: lo.ToPtr(registerNFTResult{
			NFTID:     window.NFTID,
			Window:    mapMintWindowToResult(window, window.Status(now)),
			CreatedAt: window.CreatedAt.Unix(),
		}),
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
