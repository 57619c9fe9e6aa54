package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/core/worker"
	"github.com/openmint/platform-ledger/internal/config"
	"github.com/openmint/platform-ledger/internal/postgres"
	ledgerhttphandler "github.com/openmint/platform-ledger/modules/ledger/api/httphandler"
	ledgerdatagateway "github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	ledgermemory "github.com/openmint/platform-ledger/modules/ledger/repository/memory"
	ledgerpostgres "github.com/openmint/platform-ledger/modules/ledger/repository/postgres"
	ledgerusecase "github.com/openmint/platform-ledger/modules/ledger/usecase"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
	"github.com/samber/do/v2"
)

func New(injector do.Injector) (worker.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)

	moduleConf := conf.Modules.Ledger

	defaultMintPrice := ledger.DefaultMintPrice
	if moduleConf.DefaultMintPrice != "" {
		price, err := ledger.ParseAmount(moduleConf.DefaultMintPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid default mint price %q", moduleConf.DefaultMintPrice)
		}
		if price.IsZero() {
			return nil, errors.Wrap(errs.InvalidAmount, "default mint price must be positive")
		}
		defaultMintPrice = price
	}

	wheelRewards := make([]ledger.Amount, 0, len(moduleConf.WheelRewards))
	for _, raw := range moduleConf.WheelRewards {
		reward, err := ledger.ParseAmount(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid wheel reward %q", raw)
		}
		wheelRewards = append(wheelRewards, reward)
	}

	ledgerDg := ledgermemory.New(ledgermemory.Config{
		EarlyBirdCap:  moduleConf.EarlyBirdCap,
		WheelCooldown: moduleConf.WheelCooldown,
	})

	var checkpointDg ledgerdatagateway.CheckpointDataGateway
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(moduleConf.Checkpointing) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "invalid Postgres configuration for checkpointing")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		checkpointDg = ledgerpostgres.NewRepository(pg)
	case "", "none":
		// ledger state lives in memory only and is lost on restart
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q checkpointing is not supported", moduleConf.Checkpointing)
	}

	ledgerUsecase := ledgerusecase.New(ledgerDg, checkpointDg, reportingClient, ledgerusecase.Config{
		DefaultMintPrice:  defaultMintPrice,
		TriggerSupply:     moduleConf.TriggerSupply,
		CountdownDuration: moduleConf.CountdownDuration,
		WheelRewards:      wheelRewards,
	})

	if err := ledgerUsecase.LoadCheckpoint(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	// Mount API
	httpServer := do.MustInvoke[*fiber.App](injector)
	httpHandler := ledgerhttphandler.New(ledgerUsecase)
	if err := httpHandler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount Ledger API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler")

	return &Module{
		usecase:            ledgerUsecase,
		checkpointInterval: moduleConf.CheckpointInterval,
		cleanupFuncs:       cleanupFuncs,
	}, nil
}

// Module is the ledger service background worker. It owns periodic checkpoint
// persistence; the HTTP surface is mounted on the shared fiber app during New.
type Module struct {
	usecase            *ledgerusecase.Usecase
	checkpointInterval time.Duration
	cleanupFuncs       []func(context.Context) error
}

func (m *Module) Run(ctx context.Context) error {
	defer func() {
		for _, cleanup := range m.cleanupFuncs {
			if err := cleanup(context.Background()); err != nil {
				logger.Error("Failed to release ledger module resources", slogx.Error(err))
			}
		}
	}()

	// RunCheckpointing returns immediately when checkpointing is disabled;
	// keep the worker alive until the process stops either way.
	if err := m.usecase.RunCheckpointing(ctx, m.checkpointInterval); err != nil && !errors.Is(err, context.Canceled) {
		return errors.WithStack(err)
	}
	<-ctx.Done()
	return nil
}
