package commands_test

import (
	"testing"
	"time"

	"stocktransfer/internal/core/application/usecases/commands"
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateTransferCommand_ValidInput(t *testing.T) {
	// Arrange
	transferID := kernel.NewUUID()
	source := kernel.NewUUID()
	destination := kernel.NewUUID()
	items := []commands.TransferItemInput{
		{ProductID: kernel.NewUUID(), Quantity: 5},
	}
	expectedDate := time.Now().AddDate(0, 0, 7)

	// Act
	cmd, err := commands.NewCreateTransferCommand(transferID, source, destination, items, expectedDate, "restock")

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, cmd)
	assert.Equal(t, transferID, cmd.TransferID())
	assert.Equal(t, source, cmd.SourceLocation())
	assert.Equal(t, destination, cmd.DestinationLocation())
	assert.Equal(t, items, cmd.Items())
	assert.Equal(t, expectedDate, cmd.ExpectedDate())
	assert.Equal(t, "restock", cmd.Notes())
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateTransferCommand_ValidationOrder(t *testing.T) {
	// A request broken in several ways reports its earliest problem.
	productID := kernel.NewUUID()
	source := kernel.NewUUID()
	destination := kernel.NewUUID()
	items := []commands.TransferItemInput{{ProductID: productID, Quantity: 5}}

	testCases := []struct {
		name        string
		source      kernel.UUID
		destination kernel.UUID
		items       []commands.TransferItemInput
		date        time.Time
		wantErr     error
	}{
		{
			name:        "missing source reported before missing destination",
			source:      kernel.UUID{},
			destination: kernel.UUID{},
			items:       nil,
			date:        time.Time{},
			wantErr:     transfer.ErrSourceLocationIsRequired,
		},
		{
			name:        "missing destination reported before bad items",
			source:      source,
			destination: kernel.UUID{},
			items:       nil,
			date:        time.Time{},
			wantErr:     transfer.ErrDestinationLocationIsRequired,
		},
		{
			name:        "same locations reported before bad items",
			source:      source,
			destination: source,
			items:       nil,
			date:        time.Time{},
			wantErr:     transfer.ErrLocationsMustDiffer,
		},
		{
			name:        "empty items reported before missing date",
			source:      source,
			destination: destination,
			items:       nil,
			date:        time.Time{},
			wantErr:     transfer.ErrItemsAreRequired,
		},
		{
			name:        "zero quantity reported before missing date",
			source:      source,
			destination: destination,
			items:       []commands.TransferItemInput{{ProductID: productID, Quantity: 0}},
			date:        time.Time{},
			wantErr:     transfer.ErrOrderedQtyIsInvalid,
		},
		{
			name:        "missing date reported last",
			source:      source,
			destination: destination,
			items:       items,
			date:        time.Time{},
			wantErr:     transfer.ErrExpectedDateIsRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := commands.NewCreateTransferCommand(
				kernel.NewUUID(), tc.source, tc.destination, tc.items, tc.date, "",
			)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewCreateTransferCommand_ItemWithoutProduct(t *testing.T) {
	// Act
	_, err := commands.NewCreateTransferCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]commands.TransferItemInput{{Quantity: 5}},
		time.Now().AddDate(0, 0, 7),
		"",
	)

	// Assert
	require.Error(t, err)
}

func TestCreateTransferCommand_ZeroValueFailsValidation(t *testing.T) {
	// Arrange
	var cmd commands.CreateTransferCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateTransferCommandIsNotConstructed)
}
