package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "stocktransfer/internal/adapters/out/postgres"
	"stocktransfer/internal/adapters/out/postgres/inventoryrepo"
	"stocktransfer/internal/adapters/out/postgres/trackingrepo"
	"stocktransfer/internal/adapters/out/postgres/transferrepo"
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&transferrepo.TransferDTO{},
		&transferrepo.ItemDTO{},
		&inventoryrepo.InventoryDTO{},
		&trackingrepo.JobDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE stock_transfers, stock_transfer_items, vend_inventory, queue_jobs").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestTransfer() *transfer.Transfer {
	item, err := transfer.NewItem(kernel.NewUUID(), kernel.NewUUID(), 5)
	suite.Require().NoError(err)

	aggregate, err := transfer.NewTransfer(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		time.Now().AddDate(0, 0, 7).UTC(),
		"",
		[]*transfer.Item{item},
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow := suite.factory.Create()
	suite.NotNil(uow)

	// Each call produces an isolated instance.
	other := suite.factory.Create()
	suite.NotSame(uow, other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	// Begin is idempotent while a transaction is open.
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Commit(ctx))

	// Commit without an open transaction fails.
	suite.Require().Error(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Rollback without Begin fails.
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedWritesAreVisible() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.createTestTransfer()
	productID := aggregate.Items()[0].ProductID()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TransferRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryLedger().AdjustExpectedStock(
		ctx, productID, aggregate.DestinationLocation(), 5,
	))
	suite.Require().NoError(uow.Commit(ctx))

	// Both writes are visible through a fresh unit of work.
	reader := suite.factory.Create()
	retrieved, err := reader.TransferRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), retrieved.ID())

	record, err := reader.InventoryLedger().Get(ctx, productID, aggregate.DestinationLocation())
	suite.Require().NoError(err)
	suite.Equal(5, record.ExpectedStock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.createTestTransfer()
	productID := aggregate.Items()[0].ProductID()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TransferRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryLedger().AdjustActualStock(
		ctx, productID, aggregate.SourceLocation(), -5,
	))
	suite.Require().NoError(uow.TrackingQueueRepository().Enqueue(ctx, ports.TrackingJob{
		ID:             kernel.NewUUID(),
		Type:           ports.TrackingJobTypeConsignment,
		TransferID:     aggregate.ID(),
		ConsignmentRef: "CONS-001",
		Status:         ports.TrackingJobPending,
		Priority:       ports.TrackingJobPriorityDefault,
		CreatedAt:      time.Now().UTC(),
	}))
	suite.Require().NoError(uow.Rollback(ctx))

	// Nothing survived the rollback: no transfer, no stock delta, no job.
	reader := suite.factory.Create()
	_, err := reader.TransferRepository().Get(ctx, aggregate.ID())
	suite.Require().Error(err)

	_, err = reader.InventoryLedger().Get(ctx, productID, aggregate.SourceLocation())
	suite.Require().Error(err)

	jobs, err := reader.TrackingQueueRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(jobs)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DispatchWorkflow() {
	ctx := context.Background()
	aggregate := suite.createTestTransfer()
	productID := aggregate.Items()[0].ProductID()

	// create
	createUoW := suite.factory.Create()
	suite.Require().NoError(createUoW.Begin(ctx))
	suite.Require().NoError(createUoW.TransferRepository().Add(ctx, aggregate))
	suite.Require().NoError(createUoW.InventoryLedger().AdjustExpectedStock(
		ctx, productID, aggregate.DestinationLocation(), 5,
	))
	suite.Require().NoError(createUoW.Commit(ctx))

	// send
	sendUoW := suite.factory.Create()
	suite.Require().NoError(sendUoW.Begin(ctx))
	loaded, err := sendUoW.TransferRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(sendUoW.InventoryLedger().AdjustActualStock(
		ctx, productID, loaded.SourceLocation(), -5,
	))
	suite.Require().NoError(loaded.MarkSent("CONS-001"))
	suite.Require().NoError(sendUoW.TransferRepository().Update(ctx, loaded))
	suite.Require().NoError(sendUoW.TrackingQueueRepository().Enqueue(ctx, ports.TrackingJob{
		ID:             kernel.NewUUID(),
		Type:           ports.TrackingJobTypeConsignment,
		TransferID:     loaded.ID(),
		ConsignmentRef: "CONS-001",
		Status:         ports.TrackingJobPending,
		Priority:       ports.TrackingJobPriorityDefault,
		CreatedAt:      time.Now().UTC(),
	}))
	suite.Require().NoError(sendUoW.Commit(ctx))

	// The dispatched state, the stock move, and the job all landed together.
	reader := suite.factory.Create()
	retrieved, err := reader.TransferRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(transfer.Sent, retrieved.Status())
	suite.Equal("CONS-001", retrieved.ConsignmentRef())

	record, err := reader.InventoryLedger().Get(ctx, productID, aggregate.SourceLocation())
	suite.Require().NoError(err)
	suite.Equal(-5, record.ActualStock())

	jobs, err := reader.TrackingQueueRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	suite.Equal(loaded.ID(), jobs[0].TransferID)
	suite.Equal("CONS-001", jobs[0].ConsignmentRef)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackingQueue_JobLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	older := ports.TrackingJob{
		ID:             kernel.NewUUID(),
		Type:           ports.TrackingJobTypeConsignment,
		TransferID:     kernel.NewUUID(),
		ConsignmentRef: "CONS-001",
		Status:         ports.TrackingJobPending,
		Priority:       ports.TrackingJobPriorityDefault,
		CreatedAt:      time.Now().Add(-time.Hour).UTC(),
	}
	urgent := ports.TrackingJob{
		ID:             kernel.NewUUID(),
		Type:           ports.TrackingJobTypeConsignment,
		TransferID:     kernel.NewUUID(),
		ConsignmentRef: "CONS-002",
		Status:         ports.TrackingJobPending,
		Priority:       1,
		CreatedAt:      time.Now().UTC(),
	}

	queue := uow.TrackingQueueRepository()
	suite.Require().NoError(queue.Enqueue(ctx, older))
	suite.Require().NoError(queue.Enqueue(ctx, urgent))

	// Lower priority value wins, then age.
	jobs, err := queue.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 2)
	suite.Equal(urgent.ID, jobs[0].ID)
	suite.Equal(older.ID, jobs[1].ID)

	// An unsuccessful poll leaves the job pending with one more attempt.
	suite.Require().NoError(queue.RecordAttempt(ctx, older.ID))
	jobs, err = queue.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 2)
	suite.Equal(1, jobs[1].Attempts)

	// Completed and failed jobs leave the pending set.
	suite.Require().NoError(queue.MarkCompleted(ctx, urgent.ID))
	suite.Require().NoError(queue.MarkFailed(ctx, older.ID))
	jobs, err = queue.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(jobs)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
