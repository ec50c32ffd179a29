package delivery_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackItem(t *testing.T, number string) *tracking.TrackingItem {
	t.Helper()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), number, time.Now())
	require.NoError(t, err)
	return item
}

func TestPackBox_AssignToDelivery(t *testing.T) {
	deliveryID := kernel.NewUUID()

	t.Run("empty_pack_box_rejected", func(t *testing.T) {
		p, err := delivery.NewPackBox(kernel.NewUUID(), "PB-1")
		require.NoError(t, err)

		err = p.AssignToDelivery(deliveryID, nil)

		require.ErrorIs(t, err, delivery.ErrPackBoxIsEmpty)
	})

	t.Run("assigns_with_items", func(t *testing.T) {
		p, err := delivery.NewPackBox(kernel.NewUUID(), "PB-2")
		require.NoError(t, err)

		err = p.AssignToDelivery(deliveryID, []*tracking.TrackingItem{newTrackItem(t, "VN1")})

		require.NoError(t, err)
		assert.True(t, p.DeliveryID().IsEqual(deliveryID))
	})

	t.Run("already_in_other_delivery_rejected", func(t *testing.T) {
		p, err := delivery.NewPackBox(kernel.NewUUID(), "PB-3")
		require.NoError(t, err)
		items := []*tracking.TrackingItem{newTrackItem(t, "VN2")}
		require.NoError(t, p.AssignToDelivery(deliveryID, items))

		err = p.AssignToDelivery(kernel.NewUUID(), items)

		require.ErrorIs(t, err, delivery.ErrPackBoxWasInDelivery)
	})

	t.Run("returned_item_blocks_assignment", func(t *testing.T) {
		p, err := delivery.NewPackBox(kernel.NewUUID(), "PB-4")
		require.NoError(t, err)
		held := newTrackItem(t, "VN3")
		require.NoError(t, held.RequestReturn(time.Now()))

		err = p.AssignToDelivery(deliveryID, []*tracking.TrackingItem{held})

		require.ErrorIs(t, err, delivery.ErrPackBoxIsContainingReturnedItem)
	})
}

func TestDelivery_CommitLifecycle(t *testing.T) {
	now := time.Now()

	t.Run("commit_with_items", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "DL-1")
		require.NoError(t, err)

		require.NoError(t, d.Commit(now, 3))

		assert.True(t, d.IsCommitted())
		assert.Equal(t, now, *d.CommittedAt())
	})

	t.Run("empty_delivery_rejected", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "DL-2")
		require.NoError(t, err)

		require.ErrorIs(t, d.Commit(now, 0), delivery.ErrContainerIsEmpty)
		assert.Nil(t, d.CommittedAt())
	})

	t.Run("double_commit_rejected", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "DL-3")
		require.NoError(t, err)
		require.NoError(t, d.Commit(now, 1))

		require.ErrorIs(t, d.Commit(now, 1), delivery.ErrAlreadyCommitted)
	})

	t.Run("uncommit_reopens", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "DL-4")
		require.NoError(t, err)
		require.NoError(t, d.Commit(now, 1))

		d.Uncommit()

		assert.False(t, d.IsCommitted())
		require.NoError(t, d.EnsureDeletable())
	})
}
