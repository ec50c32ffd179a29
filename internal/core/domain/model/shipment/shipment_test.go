package shipment_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	t.Run("valid_code", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "VN2024A01")

		require.NoError(t, err)
		assert.Equal(t, "VN2024A01", s.Code())
		assert.False(t, s.IsCommitted())
		assert.Nil(t, s.CommittedAt())
	})

	t.Run("empty_code_rejected", func(t *testing.T) {
		_, err := shipment.NewShipment(kernel.NewUUID(), "")
		require.Error(t, err)
	})

	t.Run("non_alphanumeric_code_rejected", func(t *testing.T) {
		_, err := shipment.NewShipment(kernel.NewUUID(), "VN 2024/01")
		require.Error(t, err)
	})
}

func TestShipment_Commit(t *testing.T) {
	now := time.Now()

	t.Run("open_shipment_with_pieces_commits", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "SH1")
		require.NoError(t, err)

		require.NoError(t, s.Commit(now, 4))

		assert.True(t, s.IsCommitted())
		assert.Equal(t, now, *s.CommittedAt())
	})

	t.Run("zero_pieces_rejected", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "SH2")
		require.NoError(t, err)

		err = s.Commit(now, 0)

		require.ErrorIs(t, err, shipment.ErrContainerIsEmpty)
		assert.Nil(t, s.CommittedAt(), "failed commit leaves the shipment open")
	})

	t.Run("double_commit_rejected", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "SH3")
		require.NoError(t, err)
		require.NoError(t, s.Commit(now, 1))

		require.ErrorIs(t, s.Commit(now, 1), shipment.ErrAlreadyCommitted)
	})
}

func TestShipment_Uncommit(t *testing.T) {
	now := time.Now()
	s, err := shipment.NewShipment(kernel.NewUUID(), "SH4")
	require.NoError(t, err)
	require.NoError(t, s.Commit(now, 2))

	s.Uncommit()

	assert.False(t, s.IsCommitted())
}

func TestShipment_EnsureDeletable(t *testing.T) {
	now := time.Now()
	s, err := shipment.NewShipment(kernel.NewUUID(), "SH5")
	require.NoError(t, err)

	require.NoError(t, s.EnsureDeletable())

	require.NoError(t, s.Commit(now, 1))
	require.ErrorIs(t, s.EnsureDeletable(), shipment.ErrAlreadyCommitted)
}

func TestShipment_Validate(t *testing.T) {
	var s shipment.Shipment

	require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
}
