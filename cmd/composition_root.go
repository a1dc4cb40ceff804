package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "transferflow/internal/adapters/in/http"
	"transferflow/internal/adapters/out/memory"
	"transferflow/internal/adapters/out/postgres"
	"transferflow/internal/adapters/out/postgres/locationrepo"
	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/application/usecases/queries"
	"transferflow/internal/core/ports"
	"transferflow/internal/jobs"
	"transferflow/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	config      Config
	logger      *slog.Logger
	instruments *telemetry.Instruments

	uowFactory ports.UnitOfWorkFactory
	reader     ports.TransferReader
	directory  ports.LocationDirectory
	inventory  ports.InventoryReader
}

// NewCompositionRoot wires the configured storage backend. The returned close
// function releases its connections.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	logger *slog.Logger,
	instruments *telemetry.Instruments,
) (CompositionRoot, func() error, error) {
	root := CompositionRoot{config: config, logger: logger, instruments: instruments}

	switch config.Storage {
	case "", StorageMemory:
		if err := root.wireMemory(); err != nil {
			return CompositionRoot{}, nil, err
		}
		return root, func() error { return nil }, nil
	case StoragePostgres:
		closeDB, err := root.wirePostgres(ctx)
		if err != nil {
			return CompositionRoot{}, nil, err
		}
		return root, closeDB, nil
	default:
		return CompositionRoot{}, nil, fmt.Errorf("unknown storage %q", config.Storage)
	}
}

func (c *CompositionRoot) wireMemory() error {
	store := memory.NewStore(memory.Options{
		Latency:   c.config.MockLatency,
		FailEvery: c.config.MockFailEvery,
	})

	orderCount := c.config.MockOrderCount
	if !c.config.SeedFixtures {
		orderCount = 0
	}
	fx, err := memory.GenerateFixtures(c.config.MockSeed, orderCount, time.Now())
	if err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}
	directory, inventory, err := memory.Seed(store, fx)
	if err != nil {
		return fmt.Errorf("seed memory store: %w", err)
	}

	c.uowFactory = memory.NewUnitOfWorkFactory(store)
	c.reader = store
	c.directory = directory
	c.inventory = inventory
	c.logger.Info("Memory store ready",
		"orders", store.Len(),
		"latency", c.config.MockLatency.String(),
		"fail_every", c.config.MockFailEvery,
	)
	return nil
}

func (c *CompositionRoot) wirePostgres(ctx context.Context) (func() error, error) {
	conn := postgres.ConnectionConfig{
		Host:     c.config.DBHost,
		Port:     c.config.DBPort,
		User:     c.config.DBUser,
		Password: c.config.DBPassword,
		DBName:   c.config.DBName,
		SSLMode:  c.config.DBSslMode,
	}
	db, err := postgres.Open(conn.DSN())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}

	locations := locationrepo.NewGormLocationRepository(db)
	if c.config.SeedFixtures {
		if err = seedLocations(ctx, locations, c.config.MockSeed); err != nil {
			return nil, errors.Join(err, sqlDB.Close())
		}
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	c.reader = postgres.NewTransferReader(db)
	c.directory = locations
	c.inventory = locations
	c.logger.Info("Postgres store ready", "host", conn.Host, "database", conn.DBName)
	return sqlDB.Close, nil
}

// seedLocations fills an empty location directory with the fixture catalog.
func seedLocations(ctx context.Context, repo *locationrepo.GormLocationRepository, seed uint64) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	fx, err := memory.GenerateFixtures(seed, 0, time.Now())
	if err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}
	return repo.Save(ctx, fx.Locations, fx.Inventory)
}

func (c *CompositionRoot) transferUoWFactory() commands.TransferUoWFactory {
	return FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateTransferCommandHandler() commands.CreateTransferCommandHandler {
	return commands.NewCreateTransferCommandHandler(c.transferUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateUpdateTransferCommandHandler() commands.UpdateTransferCommandHandler {
	return commands.NewUpdateTransferCommandHandler(c.transferUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateDeleteTransferCommandHandler() commands.DeleteTransferCommandHandler {
	return commands.NewDeleteTransferCommandHandler(c.transferUoWFactory())
}

func (c *CompositionRoot) CreateTransitionTransferCommandHandler() commands.TransitionTransferCommandHandler {
	return commands.NewTransitionTransferCommandHandler(c.transferUoWFactory(), c.instruments, c.logger)
}

func (c *CompositionRoot) CreateBatchApplyCommandHandler() commands.BatchApplyCommandHandler {
	return commands.NewBatchApplyCommandHandler(c.transferUoWFactory(), c.instruments, c.logger)
}

func (c *CompositionRoot) CreateGetTransferQueryHandler() queries.GetTransferQueryHandler {
	return queries.NewGetTransferQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetTransfersQueryHandler() queries.GetTransfersQueryHandler {
	return queries.NewGetTransfersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetLocationsQueryHandler() queries.GetLocationsQueryHandler {
	return queries.NewGetLocationsQueryHandler(c.directory)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.directory, c.inventory)
}

// NewRouter builds the echo instance with every handler wired.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	server := httpadapter.NewServer(httpadapter.Handlers{
		Create:        c.CreateCreateTransferCommandHandler(),
		Update:        c.CreateUpdateTransferCommandHandler(),
		Delete:        c.CreateDeleteTransferCommandHandler(),
		Transition:    c.CreateTransitionTransferCommandHandler(),
		Batch:         c.CreateBatchApplyCommandHandler(),
		GetTransfer:   c.CreateGetTransferQueryHandler(),
		GetTransfers:  c.CreateGetTransfersQueryHandler(),
		GetStatistics: c.CreateGetStatisticsQueryHandler(),
		GetLocations:  c.CreateGetLocationsQueryHandler(),
		GetInventory:  c.CreateGetInventoryQueryHandler(),
	})
	return httpadapter.NewRouter(server, doc)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	handler := c.CreateGetStatisticsQueryHandler()
	return jobs.NewJobManager(handler, c.config.StatsReportSchedule, c.logger)
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}
