package facility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBed(t *testing.T) {
	t.Run("new bed starts available", func(t *testing.T) {
		bed, err := NewBed("W1-04", uuid.New(), decimal.NewFromInt(120))
		require.NoError(t, err)

		assert.True(t, bed.Available)
		assert.Equal(t, BedStatusAvailable, bed.Status())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewBed("", uuid.New(), decimal.Zero)
		assert.Error(t, err)

		_, err = NewBed("W1-04", uuid.Nil, decimal.Zero)
		assert.Error(t, err)

		_, err = NewBed("W1-04", uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestBed_OccupyRelease(t *testing.T) {
	bed, err := NewBed("W1-04", uuid.New(), decimal.NewFromInt(120))
	require.NoError(t, err)

	require.NoError(t, bed.Occupy())
	assert.Equal(t, BedStatusOccupied, bed.Status())

	assert.Error(t, bed.Occupy(), "double occupy is rejected")

	bed.Release()
	assert.Equal(t, BedStatusAvailable, bed.Status())
}

func TestNewBedType(t *testing.T) {
	bt, err := NewBedType("ICU", "Intensive care unit beds")
	require.NoError(t, err)
	assert.Equal(t, "ICU", bt.Name)

	_, err = NewBedType("", "")
	assert.Error(t, err)

	require.NoError(t, bt.Update("ICU-A", "Wing A"))
	assert.Equal(t, 2, bt.Version)
}
