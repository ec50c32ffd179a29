package box_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemWithPieceInBox creates a repacked item whose single piece sits in boxID.
func itemWithPieceInBox(t *testing.T, number string, boxID kernel.UUID) *tracking.TrackingItem {
	t.Helper()
	now := time.Now()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), number, now)
	require.NoError(t, err)
	for _, stage := range []tracking.Stage{tracking.StageRegistered, tracking.StageReceivedAtUS, tracking.StageRepacking, tracking.StageRepacked} {
		_, err = item.Transition(stage, now)
		require.NoError(t, err)
	}
	require.NoError(t, item.Pieces()[0].AssignToBox(boxID))
	return item
}

func TestNewBox(t *testing.T) {
	b, err := box.NewBox(kernel.NewUUID(), "BX-100")

	require.NoError(t, err)
	assert.Equal(t, "BX-100", b.Code())
	assert.Nil(t, b.ShipmentID())
	assert.Nil(t, b.LotID())

	t.Run("requires_code", func(t *testing.T) {
		_, err := box.NewBox(kernel.NewUUID(), "")
		require.Error(t, err)
	})
}

func TestBox_AssignToShipment(t *testing.T) {
	shipmentID := kernel.NewUUID()

	t.Run("empty_box_rejected", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-1")
		require.NoError(t, err)

		err = b.AssignToShipment(shipmentID, nil)

		require.ErrorIs(t, err, box.ErrBoxIsEmpty)
		assert.Nil(t, b.ShipmentID())
	})

	t.Run("custom_items_count_as_content", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-2")
		require.NoError(t, err)
		require.NoError(t, b.AddCustomItem("gift wrap", 3))

		require.NoError(t, b.AssignToShipment(shipmentID, nil))
		assert.True(t, b.ShipmentID().IsEqual(shipmentID))
	})

	t.Run("box_with_pieces_assigned", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-3")
		require.NoError(t, err)
		owner := itemWithPieceInBox(t, "US1", b.ID())

		require.NoError(t, b.AssignToShipment(shipmentID, []*tracking.TrackingItem{owner}))
	})

	t.Run("already_in_other_shipment_rejected", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-4")
		require.NoError(t, err)
		owner := itemWithPieceInBox(t, "US2", b.ID())
		require.NoError(t, b.AssignToShipment(shipmentID, []*tracking.TrackingItem{owner}))

		err = b.AssignToShipment(kernel.NewUUID(), []*tracking.TrackingItem{owner})

		require.ErrorIs(t, err, box.ErrBoxWasInShipment)
	})

	t.Run("reassigning_same_shipment_is_idempotent", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-5")
		require.NoError(t, err)
		owner := itemWithPieceInBox(t, "US3", b.ID())
		require.NoError(t, b.AssignToShipment(shipmentID, []*tracking.TrackingItem{owner}))

		require.NoError(t, b.AssignToShipment(shipmentID, []*tracking.TrackingItem{owner}))
	})

	t.Run("returned_item_blocks_assignment", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID(), "BX-6")
		require.NoError(t, err)
		held := itemWithPieceInBox(t, "US4", b.ID())
		require.NoError(t, held.RequestReturn(time.Now()))

		err = b.AssignToShipment(shipmentID, []*tracking.TrackingItem{held})

		require.ErrorIs(t, err, box.ErrBoxIsContainingReturnedItem)
		var cerr *box.ContainsReturnedItemError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{"US4"}, cerr.TrackingNumbers)
		assert.Nil(t, b.ShipmentID())
	})
}

func TestBox_RemoveFromShipment(t *testing.T) {
	b, err := box.NewBox(kernel.NewUUID(), "BX-7")
	require.NoError(t, err)
	owner := itemWithPieceInBox(t, "US5", b.ID())
	require.NoError(t, b.AssignToShipment(kernel.NewUUID(), []*tracking.TrackingItem{owner}))

	b.RemoveFromShipment()

	assert.Nil(t, b.ShipmentID())
}

func TestBox_Lot(t *testing.T) {
	b, err := box.NewBox(kernel.NewUUID(), "BX-8")
	require.NoError(t, err)
	lotID := kernel.NewUUID()

	require.NoError(t, b.AssignToLot(lotID))
	assert.True(t, b.LotID().IsEqual(lotID))

	b.RemoveFromLot()
	assert.Nil(t, b.LotID())
}

func TestBox_SetWeight(t *testing.T) {
	b, err := box.NewBox(kernel.NewUUID(), "BX-9")
	require.NoError(t, err)

	require.NoError(t, b.SetWeight(12.5))
	assert.InDelta(t, 12.5, b.WeightKg(), 1e-9)

	require.Error(t, b.SetWeight(-1))
}

func TestBox_Validate(t *testing.T) {
	var b box.Box

	require.ErrorIs(t, b.Validate(), box.ErrBoxIsNotConstructed)
}
