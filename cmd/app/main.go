package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stocktransfer/cmd"
	httpin "stocktransfer/internal/adapters/in/http"
	"stocktransfer/internal/adapters/out/postgres/inventoryrepo"
	"stocktransfer/internal/adapters/out/postgres/trackingrepo"
	"stocktransfer/internal/adapters/out/postgres/transferrepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrate(gormDB); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root.Producer().Start(ctx)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(
		root.CreateCreateTransferCommandHandler(),
		root.CreateSendTransferCommandHandler(),
		root.CreateReceiveTransferCommandHandler(),
		root.CreateCancelTransferCommandHandler(),
		root.CreateGetTransferQueryHandler(),
		root.CreateGetIncompleteTransfersQueryHandler(),
		root.CreateGetStockOnHandQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start("0.0.0.0:" + configs.HTTPPort); startErr != nil {
			logger.Info("http server stopped", "reason", startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	root.Producer().WaitClosed()
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		LightspeedBaseURL:        goDotEnvVariable("LIGHTSPEED_BASE_URL"),
		LightspeedToken:          goDotEnvVariable("LIGHTSPEED_TOKEN"),
		KafkaHost:                goDotEnvVariable("KAFKA_HOST"),
		KafkaTransferEventsTopic: goDotEnvVariable("KAFKA_TRANSFER_EVENTS_TOPIC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&transferrepo.TransferDTO{},
		&transferrepo.ItemDTO{},
		&inventoryrepo.InventoryDTO{},
		&trackingrepo.JobDTO{},
	)
}
