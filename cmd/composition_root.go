package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"stocktransfer/internal/adapters/out/kafka"
	"stocktransfer/internal/adapters/out/lightspeed"
	"stocktransfer/internal/adapters/out/postgres"
	"stocktransfer/internal/adapters/out/postgres/trackingrepo"
	"stocktransfer/internal/core/application/usecases/commands"
	"stocktransfer/internal/core/application/usecases/queries"
	"stocktransfer/internal/jobs"
)

// eventInboxSize buffers published events while the broker write catches up.
const eventInboxSize = 256

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	gateway        *lightspeed.Client
	producer       *kafka.Producer
	eventPublisher *kafka.TransferEventPublisher
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	producer := kafka.NewProducer(
		[]string{config.KafkaHost},
		config.KafkaTransferEventsTopic,
		eventInboxSize,
		logger,
	)

	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:        lightspeed.NewClient(config.LightspeedBaseURL, config.LightspeedToken),
		producer:       producer,
		eventPublisher: kafka.NewTransferEventPublisher(producer, logger),
		logger:         logger,
	}
}

// Producer returns the event producer so main can start and drain it.
func (c *CompositionRoot) Producer() *kafka.Producer {
	return c.producer
}

func (c *CompositionRoot) CreateCreateTransferCommandHandler() commands.CreateTransferCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTransferCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateSendTransferCommandHandler() commands.SendTransferCommandHandler {
	var f commands.SendUoWFactory = FuncSendUoWFactory(func() commands.SendUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendTransferCommandHandler(f, c.gateway, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateReceiveTransferCommandHandler() commands.ReceiveTransferCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveTransferCommandHandler(f, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateCancelTransferCommandHandler() commands.CancelTransferCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelTransferCommandHandler(f, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateTrackConsignmentsCommandHandler() commands.TrackConsignmentsCommandHandler {
	// Queue rows are updated one by one; no surrounding transaction is needed.
	queue := trackingrepo.NewGormTrackingQueueRepository(c.gormDB)
	return commands.NewTrackConsignmentsCommandHandler(queue, c.gateway, c.logger)
}

func (c *CompositionRoot) CreateGetTransferQueryHandler() queries.GetTransferQueryHandler {
	return queries.NewGetTransferQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncompleteTransfersQueryHandler() queries.GetIncompleteTransfersQueryHandler {
	return queries.NewGetIncompleteTransfersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockOnHandQueryHandler() queries.GetStockOnHandQueryHandler {
	return queries.NewGetStockOnHandQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateTrackConsignmentsCommandHandler(), c.logger)
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type FuncSendUoWFactory func() commands.SendUoW

func (f FuncSendUoWFactory) Create() commands.SendUoW {
	return f()
}
