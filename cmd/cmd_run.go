package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/core/worker"
	"github.com/openmint/platform-ledger/internal/config"
	ledger "github.com/openmint/platform-ledger/modules/ledger"
	"github.com/openmint/platform-ledger/pkg/automaxprocs"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/openmint/platform-ledger/pkg/middleware/errorhandler"
	"github.com/openmint/platform-ledger/pkg/middleware/requestcontext"
	"github.com/openmint/platform-ledger/pkg/middleware/requestlogger"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Register Modules
var Modules = do.Package(
	do.LazyNamed("ledger", ledger.New),
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start platform-ledger service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Bool("api-only", false, "Run only API server, without background workers")

	// Bind flags to configuration
	config.BindPFlag("api_only", flags.Lookup("api-only"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second

	ledgerModuleName = "ledger"
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize reporting client
	do.Provide(injector, func(i do.Injector) (*reportingclient.ReportingClient, error) {
		conf := do.MustInvoke[config.Config](i)
		if conf.Reporting.Disabled {
			return nil, nil
		}

		reportingClient, err := reportingclient.New(conf.Reporting)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "invalid reporting configuration")
			}
			return nil, errors.Wrap(err, "can't create reporting client")
		}
		return reportingClient, nil
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "Platform Ledger",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(conf.HTTPServer.RequestIP),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Initialize worker context to separate worker's lifecycle from main process
	ctxWorker, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	// Add logger context
	ctxWorker = logger.WithContext(ctxWorker, slogx.String("module", ledgerModuleName))

	// Run ledger module
	workerDone := make(chan struct{})
	{
		ledgerWorker, err := do.InvokeNamed[worker.Worker](injector, ledgerModuleName)
		if err != nil {
			return errors.Wrapf(err, "can't init module %q", ledgerModuleName)
		}

		if !conf.APIOnly {
			go func() {
				// stop main process if worker stopped
				defer stop()
				defer close(workerDone)

				logger.InfoContext(ctxWorker, "Starting ledger worker")
				if err := ledgerWorker.Run(ctxWorker); err != nil {
					logger.PanicContext(ctxWorker, "Something went wrong, error during running ledger worker", slogx.Error(err))
				}
			}()
		} else {
			close(workerDone)
		}
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctx, "Platform Ledger started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	// Stop the worker and wait for it to finish its final checkpoint before
	// tearing anything down.
	stopWorker()
	<-workerDone

	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
