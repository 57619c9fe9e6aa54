package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/modules/ledger/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

// Amounts travel as decimal strings on the wire to avoid float precision loss.

func parseAmount(field, value string) (ledger.Amount, error) {
	amount, err := ledger.ParseAmount(value)
	if err != nil {
		return ledger.Amount{}, errs.WithPublicMessage(errors.WithStack(err), "invalid "+field)
	}
	return amount, nil
}

func parseOptionalAmount(field, value string) (*ledger.Amount, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := parseAmount(field, value)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &amount, nil
}

type feeSplitResult struct {
	Total       string `json:"total"`
	Creator     string `json:"creator"`
	FirstMinter string `json:"firstMinter"`
	Referral    string `json:"referral"`
	Platform    string `json:"platform"`
}

func mapFeeSplitToResult(split ledger.FeeSplit) feeSplitResult {
	return feeSplitResult{
		Total:       split.Total.String(),
		Creator:     split.Creator.String(),
		FirstMinter: split.FirstMinter.String(),
		Referral:    split.Referral.String(),
		Platform:    split.Platform.String(),
	}
}
