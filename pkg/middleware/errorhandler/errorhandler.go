package errorhandler

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
)

// Each error kind maps to a stable status code so clients can distinguish
// "retry later" (409) from "never" (403/409) from "input error" (400).
var errorKindStatuses = []struct {
	kind   errs.ErrorKind
	status int
}{
	{errs.InvalidAmount, http.StatusBadRequest},
	{errs.InvalidPrice, http.StatusBadRequest},
	{errs.InvalidArgument, http.StatusBadRequest},
	{errs.OverflowUint128, http.StatusBadRequest},
	{errs.Unsupported, http.StatusBadRequest},
	{errs.Unauthorized, http.StatusForbidden},
	{errs.ListingNotFound, http.StatusNotFound},
	{errs.ResourceNotFound, http.StatusNotFound},
	{errs.NotFound, http.StatusNotFound},
	{errs.MintWindowClosed, http.StatusConflict},
	{errs.AlreadyClaimed, http.StatusConflict},
	{errs.ProgramExhausted, http.StatusConflict},
	{errs.CooldownActive, http.StatusConflict},
	{errs.Duplicate, http.StatusConflict},
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		for _, mapping := range errorKindStatuses {
			if !errors.Is(err, mapping.kind) {
				continue
			}
			message := mapping.kind.Error()
			if e := new(errs.PublicError); errors.As(err, &e) {
				message = e.Message()
			}
			body := map[string]any{
				"error": message,
			}
			if e := new(errs.CooldownActiveError); errors.As(err, &e) {
				body["remainingSeconds"] = int64(e.Remaining / time.Second)
			}
			return errors.WithStack(ctx.Status(mapping.status).JSON(body))
		}
		if e := new(errs.PublicError); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(http.StatusBadRequest).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).SendString(e.Error()))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
