package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stocktransfer/internal/adapters/out/postgres/transferrepo"
	"stocktransfer/internal/core/application/usecases/queries"
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
)

type GetIncompleteTransfersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetIncompleteTransfersQueryHandler
	repo      *transferrepo.GormTransferRepository
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&transferrepo.TransferDTO{}, &transferrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetIncompleteTransfersQueryHandler(db)
	suite.repo = transferrepo.NewGormTransferRepository(db, &mockAggregateTracker{})
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE stock_transfers, stock_transfer_items CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetIncompleteTransfersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyInFlight() {
	draft := suite.addTransfer(func(*transfer.Transfer) {})
	sent := suite.addTransfer(func(t *transfer.Transfer) {
		suite.Require().NoError(t.MarkSent("CONS-1"))
	})
	partiallyReceived := suite.addTransfer(func(t *transfer.Transfer) {
		suite.Require().NoError(t.MarkSent("CONS-2"))
		suite.Require().NoError(t.ApplyReceipt(t.Items()[0].ID(), 2, nil))
		suite.Require().NoError(t.FinalizeReceipt())
	})
	received := suite.addTransfer(func(t *transfer.Transfer) {
		suite.Require().NoError(t.MarkSent("CONS-3"))
		for _, item := range t.Items() {
			suite.Require().NoError(t.ApplyReceipt(item.ID(), item.OrderedQty(), nil))
		}
		suite.Require().NoError(t.FinalizeReceipt())
	})
	cancelled := suite.addTransfer(func(t *transfer.Transfer) {
		suite.Require().NoError(t.CancelWithReason("no longer needed"))
	})

	query := queries.NewGetIncompleteTransfersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	resultIDs := make(map[kernel.UUID]string)
	for _, r := range result {
		resultIDs[r.ID] = r.Status
	}

	suite.Equal(transfer.Draft.String(), resultIDs[draft.ID()])
	suite.Equal(transfer.Sent.String(), resultIDs[sent.ID()])
	suite.Equal(transfer.PartiallyReceived.String(), resultIDs[partiallyReceived.ID()])
	suite.NotContains(resultIDs, received.ID())
	suite.NotContains(resultIDs, cancelled.ID())
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TestHandle_OtherTransferTypes_AreInvisible() {
	err := suite.db.Exec(
		`INSERT INTO stock_transfers
		 (id, type, status, source_location_id, destination_location_id,
		  expected_date, notes, consignment_reference, created_at, updated_at, version)
		 VALUES (?, 'SUPPLIER_ORDER', 'DRAFT', ?, ?, ?, '', '', ?, ?, 1)`,
		kernel.NewUUID().String(), kernel.NewUUID().String(), kernel.NewUUID().String(),
		time.Now().UTC(), time.Now().UTC(), time.Now().UTC(),
	).Error
	suite.Require().NoError(err)

	query := queries.NewGetIncompleteTransfersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TestHandle_TransfersAreSortedByID() {
	for range 3 {
		suite.addTransfer(func(*transfer.Transfer) {})
	}

	query := queries.NewGetIncompleteTransfersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	for i := range len(result) - 1 {
		suite.Less(result[i].ID.String(), result[i+1].ID.String())
	}
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetIncompleteTransfersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetIncompleteTransfersQuery constructor")
}

func (suite *GetIncompleteTransfersQueryHandlerTestSuite) addTransfer(
	mutate func(*transfer.Transfer),
) *transfer.Transfer {
	itemA, err := transfer.NewItem(kernel.NewUUID(), kernel.NewUUID(), 5)
	suite.Require().NoError(err)
	itemB, err := transfer.NewItem(kernel.NewUUID(), kernel.NewUUID(), 3)
	suite.Require().NoError(err)

	aggregate, err := transfer.NewTransfer(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC().AddDate(0, 0, 7), "",
		[]*transfer.Item{itemA, itemB},
	)
	suite.Require().NoError(err)

	mutate(aggregate)

	err = suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	return aggregate
}

func TestGetIncompleteTransfersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetIncompleteTransfersQueryHandlerTestSuite))
}
