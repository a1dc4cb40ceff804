package location_test

import (
	"testing"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	id := kernel.NewUUID()
	contact := kernel.Contact{Name: "Mia", Phone: "555-0100"}

	t.Run("should create valid location", func(t *testing.T) {
		l, err := location.NewLocation(id, kernel.Store, "ST-07", "Riverside", "Quay 3", contact, true)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.True(t, l.ID().IsEqual(id))
		assert.Equal(t, kernel.Store, l.Type())
		assert.Equal(t, "ST-07", l.Code())
		assert.Equal(t, "Riverside", l.Name())
		assert.Equal(t, "Quay 3", l.Address())
		assert.Equal(t, contact, l.Contact())
		assert.True(t, l.IsActive())
	})

	t.Run("should fail with missing fields", func(t *testing.T) {
		l, err := location.NewLocation(kernel.UUID{}, kernel.UnknownLocationType, "", "", "", contact, true)

		require.Error(t, err)
		assert.Nil(t, l)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "location type")
		assert.Contains(t, err.Error(), "location code")
		assert.Contains(t, err.Error(), "location name")
	})

	t.Run("nil location is not constructed", func(t *testing.T) {
		var l *location.Location

		assert.Equal(t, location.ErrLocationIsNotConstructed, l.Validate())
	})
}

func TestLocation_Snapshot(t *testing.T) {
	l, err := location.NewLocation(kernel.NewUUID(), kernel.Warehouse, "WH-1", "North", "Dock 1",
		kernel.Contact{Name: "Ola"}, true)
	require.NoError(t, err)

	s, err := l.Snapshot()

	require.NoError(t, err)
	assert.True(t, s.ID().IsEqual(l.ID()))
	assert.Equal(t, l.Type(), s.Type())
	assert.Equal(t, l.Code(), s.Code())
	assert.Equal(t, l.Name(), s.Name())
	assert.Equal(t, l.Address(), s.Address())
	assert.Equal(t, l.Contact(), s.Contact())
}

func TestInventorySnapshot_Available(t *testing.T) {
	assert.Equal(t, 7, location.InventorySnapshot{Quantity: 10, Reserved: 3}.Available())
	assert.Equal(t, 0, location.InventorySnapshot{Quantity: 2, Reserved: 5}.Available())
}
