package inventory_test

import (
	"testing"

	"stocktransfer/internal/core/domain/model/inventory"
	"stocktransfer/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("creates record with counters", func(t *testing.T) {
		productID := kernel.NewUUID()
		locationID := kernel.NewUUID()

		record, err := inventory.NewRecord(productID, locationID, 12, 3)

		require.NoError(t, err)
		assert.True(t, record.ProductID().IsEqual(productID))
		assert.True(t, record.LocationID().IsEqual(locationID))
		assert.Equal(t, 12, record.ActualStock())
		assert.Equal(t, 3, record.ExpectedStock())
		require.NoError(t, record.Validate())
	})

	t.Run("negative counters are representable", func(t *testing.T) {
		record, err := inventory.NewRecord(kernel.NewUUID(), kernel.NewUUID(), -4, -1)

		require.NoError(t, err)
		assert.Equal(t, -4, record.ActualStock())
		assert.Equal(t, -1, record.ExpectedStock())
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		_, err := inventory.NewRecord(kernel.UUID{}, kernel.NewUUID(), 0, 0)
		require.Error(t, err)

		_, err = inventory.NewRecord(kernel.NewUUID(), kernel.UUID{}, 0, 0)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var record inventory.Record

		require.Error(t, record.Validate())
	})
}
