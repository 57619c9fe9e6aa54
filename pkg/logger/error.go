package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors/errbase"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
)

// errorAttrReplacer renders error attributes as their message so text output
// stays on one line; the verbose form is added by middlewareError.
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if attr.Key != slogx.ErrorKey && attr.Key != "err" {
		return attr
	}
	if err, ok := attr.Value.Any().(error); ok && err != nil {
		return slog.String(attr.Key, err.Error())
	}
	return attr
}

// middlewareError attaches the verbose error rendering and, when available,
// the stack trace to records carrying an error attribute.
func middlewareError() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			var recErr error
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key == slogx.ErrorKey || attr.Key == "err" {
					if err, ok := attr.Value.Any().(error); ok && err != nil {
						recErr = err
						return false
					}
				}
				return true
			})
			if recErr != nil {
				rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", recErr)))
				if x, ok := recErr.(errbase.StackTraceProvider); ok { //nolint:errorlint
					rec.AddAttrs(slog.Any(ErrorStackTraceKey, traceLines(x.StackTrace())))
				}
			}

			return next(ctx, rec)
		}
	}
}

func traceLines(frames errbase.StackTrace) []string {
	traceLines := make([]string, 0, len(frames))

	// Iterate in reverse to skip uninteresting, consecutive runtime frames at
	// the bottom of the trace.
	skipping := true
	for i := len(frames) - 1; i >= 0; i-- {
		pc := uintptr(frames[i]) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			traceLines = append(traceLines, "unknown")
			skipping = false
			continue
		}

		name := fn.Name()
		if skipping && strings.HasPrefix(name, "runtime.") {
			continue
		} else {
			skipping = false
		}

		filename, lineNr := fn.FileLine(pc)
		traceLines = append(traceLines, fmt.Sprintf("%s %s:%d", name, filename, lineNr))
	}

	return traceLines[:len(traceLines):len(traceLines)]
}
