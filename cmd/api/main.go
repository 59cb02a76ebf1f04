package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/config"
	"github.com/modi-mansi/ecommerce/internal/domain/service"
	"github.com/modi-mansi/ecommerce/internal/handler"
	"github.com/modi-mansi/ecommerce/internal/infra/db"
	"github.com/modi-mansi/ecommerce/internal/infra/event"
	logs "github.com/modi-mansi/ecommerce/internal/infra/log"
	"github.com/modi-mansi/ecommerce/internal/infra/memory"
	infraRepo "github.com/modi-mansi/ecommerce/internal/infra/repository"
	"github.com/modi-mansi/ecommerce/internal/repository"
	"github.com/modi-mansi/ecommerce/internal/seed"
	"github.com/modi-mansi/ecommerce/internal/server"
	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// WithinTx と Tx外のリポジトリの両方を持つストア
type store interface {
	repository.TransactionManager
	Repos() repository.TxRepos
}

type publisher interface {
	usecase.OrderEventPublisher
	io.Closer
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logs.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := service.SystemClock{}

	//ストア（memory / postgres）
	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	repos := st.Repos()

	//注文イベント
	pub, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("close publisher failed", slog.Any("error", err))
		}
	}()

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(repos.Products(), cfg.LowStockThreshold)
	productUC := usecase.NewProductUsecase(st, logger)
	cartUC := usecase.NewCartUsecase(st, repos)
	orderUC := usecase.NewOrderUsecase(st, repos, pub, clock, logger, usecase.OrderOptions{
		RestoreStockOnCancel: cfg.RestoreStockOnCancel,
	})
	metricsUC := usecase.NewMetricsUsecase(repos.Orders(), catalogUC)
	inventoryUC := usecase.NewInventoryUsecase(repos.Inventory())
	userUC := usecase.NewUserUsecase(repos.Users(), usecase.NewBcryptPasswordHasher(cfg.BcryptCost))

	if cfg.SeedData {
		if err := seed.Run(ctx, productUC, userUC, logger); err != nil {
			return err
		}
	}

	//Handler生成
	h := server.Handlers{
		Products:  handler.NewProductHandler(catalogUC, productUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Cart:      handler.NewCartHandler(cartUC),
		Analytics: handler.NewAnalyticsHandler(metricsUC),
		Inventory: handler.NewInventoryHandler(inventoryUC),
		Users:     handler.NewUserHandler(userUC),
		Health:    handler.NewHealthHandler(clock),
	}

	//Server起動
	return server.New(cfg.Addr(), logger, h).Run(ctx)
}

func openStore(cfg config.Config, logger *slog.Logger) (store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		gdb, err := db.Connect(db.Options{
			DatabaseURL: cfg.DatabaseURL,
			Host:        cfg.PostgresHost,
			Port:        strconv.Itoa(cfg.PostgresPort),
			User:        cfg.PostgresUser,
			Password:    cfg.PostgresPassword,
			Name:        cfg.PostgresDB,
			SSLMode:     cfg.PostgresSSLMode,
			Debug:       cfg.LogLevel == "debug",
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gdb); err != nil {
			return nil, err
		}
		logger.Info("using postgres store")
		return infraRepo.NewTxManagerGorm(gdb), nil
	case config.StoreMemory:
		logger.Info("using in-memory store")
		return memory.NewStore(service.UUIDGenerator{}, service.SystemClock{}), nil
	}
	return nil, errors.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func openPublisher(cfg config.Config, logger *slog.Logger) (publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return event.NewNoopPublisher(logger), nil
	}
	pub, err := event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing order events to kafka", slog.String("topic", cfg.KafkaOrderTopic))
	return pub, nil
}
