package kernel_test

import (
	"testing"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationType(t *testing.T) {
	t.Run("should round trip through string", func(t *testing.T) {
		for _, lt := range []kernel.LocationType{kernel.Warehouse, kernel.Store} {
			parsed, err := kernel.ParseLocationType(lt.String())

			require.NoError(t, err)
			assert.Equal(t, lt, parsed)
		}
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		parsed, err := kernel.ParseLocationType(" store ")

		require.NoError(t, err)
		assert.Equal(t, kernel.Store, parsed)
	})

	t.Run("should reject unknown", func(t *testing.T) {
		_, err := kernel.ParseLocationType("depot")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, kernel.UnknownLocationType.Validate(), errs.ErrValueIsInvalid)
	})
}

func TestNewLocationSnapshot(t *testing.T) {
	id := kernel.NewUUID()
	contact := kernel.Contact{Name: "Ivo", Phone: "+386 1 000"}

	t.Run("should create snapshot", func(t *testing.T) {
		s, err := kernel.NewLocationSnapshot(kernel.Warehouse, id, "WH-01", "Central", "Main road 1", contact)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, kernel.Warehouse, s.Type())
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, "WH-01", s.Code())
		assert.Equal(t, "Central", s.Name())
		assert.Equal(t, "Main road 1", s.Address())
		assert.Equal(t, contact, s.Contact())
		assert.Equal(t, "WAREHOUSE WH-01 (Central)", s.String())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := kernel.NewLocationSnapshot(kernel.UnknownLocationType, kernel.UUID{}, "", "", "", kernel.Contact{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "location type")
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "location code")
		assert.Contains(t, err.Error(), "location name")
	})

	t.Run("should compare by referenced location", func(t *testing.T) {
		a, _ := kernel.NewLocationSnapshot(kernel.Store, id, "S-1", "Old name", "", contact)
		b, _ := kernel.NewLocationSnapshot(kernel.Store, id, "S-1", "New name", "", contact)

		assert.True(t, a.IsSameLocation(b))
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var s kernel.LocationSnapshot

		assert.Equal(t, kernel.ErrLocationSnapshotIsNotConstructed, s.Validate())
	})
}
