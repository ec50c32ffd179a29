package services_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repackedItem creates an item at repacked with the given number of pieces,
// all assigned and boxed into b.
func repackedItem(t *testing.T, number string, pieceCount int, b *box.Box, now time.Time) *tracking.TrackingItem {
	t.Helper()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), number, now)
	require.NoError(t, err)
	for i := 1; i < pieceCount; i++ {
		_, err = item.SplitPiece(number + "-extra")
		require.NoError(t, err)
	}
	for _, stage := range []tracking.Stage{tracking.StageRegistered, tracking.StageReceivedAtUS, tracking.StageRepacking, tracking.StageRepacked} {
		_, err = item.Transition(stage, now)
		require.NoError(t, err)
	}

	keys := make([]string, 0, pieceCount)
	for _, piece := range item.Pieces() {
		require.NoError(t, piece.AssignToBox(b.ID()))
		keys = append(keys, piece.ID().String())
	}
	_, err = item.AdvancePieces(keys, tracking.StageBoxed, now)
	require.NoError(t, err)
	require.Equal(t, tracking.StageBoxed, item.Status())
	return item
}

func TestCommitCascader_CommitShipment(t *testing.T) {
	now := time.Now()
	cascader := services.NewCommitCascader()

	t.Run("two_piece_item_flies_back_with_one_notification", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "S1")
		require.NoError(t, err)
		b, err := box.NewBox(kernel.NewUUID(), "B1")
		require.NoError(t, err)
		item := repackedItem(t, "X1", 2, b, now)

		notifications, err := cascader.CommitShipment(s,
			[]services.BoxContents{{Box: b, Items: []*tracking.TrackingItem{item}}}, now)

		require.NoError(t, err)
		assert.True(t, s.IsCommitted())
		assert.Equal(t, tracking.StageFlyingBack, item.Status())
		for _, piece := range item.Pieces() {
			assert.Equal(t, now, *piece.FlyingBackAt())
		}
		require.Len(t, notifications, 1)
		assert.Equal(t, "X1", notifications[0].TrackingNumber)
		assert.Equal(t, tracking.StageFlyingBack, notifications[0].Stage)
		assert.Equal(t, now, notifications[0].Timestamp)
	})

	t.Run("empty_shipment_rejected", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "S2")
		require.NoError(t, err)

		_, err = cascader.CommitShipment(s, nil, now)

		require.ErrorIs(t, err, shipment.ErrContainerIsEmpty)
		assert.Nil(t, s.CommittedAt())
	})

	t.Run("held_item_fails_cascade", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "S3")
		require.NoError(t, err)
		b, err := box.NewBox(kernel.NewUUID(), "B3")
		require.NoError(t, err)
		item, err := tracking.NewTrackingItem(kernel.NewUUID(), "X3", now)
		require.NoError(t, err)
		require.NoError(t, item.Pieces()[0].AssignToBox(b.ID()))
		require.NoError(t, item.RequestReturn(now))

		_, err = cascader.CommitShipment(s,
			[]services.BoxContents{{Box: b, Items: []*tracking.TrackingItem{item}}}, now)

		require.ErrorIs(t, err, tracking.ErrReturnRequestActive)
	})

	t.Run("item_straddling_two_boxes_promotes_once", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "S4")
		require.NoError(t, err)
		b1, err := box.NewBox(kernel.NewUUID(), "B4a")
		require.NoError(t, err)
		b2, err := box.NewBox(kernel.NewUUID(), "B4b")
		require.NoError(t, err)

		item, err := tracking.NewTrackingItem(kernel.NewUUID(), "X4", now)
		require.NoError(t, err)
		second, err := item.SplitPiece("X4-2")
		require.NoError(t, err)
		for _, stage := range []tracking.Stage{tracking.StageRegistered, tracking.StageReceivedAtUS, tracking.StageRepacking, tracking.StageRepacked} {
			_, err = item.Transition(stage, now)
			require.NoError(t, err)
		}
		first := item.Pieces()[0]
		require.NoError(t, first.AssignToBox(b1.ID()))
		require.NoError(t, second.AssignToBox(b2.ID()))
		_, err = item.AdvancePieces([]string{first.ID().String(), second.ID().String()}, tracking.StageBoxed, now)
		require.NoError(t, err)

		notifications, err := cascader.CommitShipment(s, []services.BoxContents{
			{Box: b1, Items: []*tracking.TrackingItem{item}},
			{Box: b2, Items: []*tracking.TrackingItem{item}},
		}, now)

		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, tracking.StageFlyingBack, item.Status())
	})
}

func TestCommitCascader_UncommitShipmentBox_RoundTrip(t *testing.T) {
	now := time.Now()
	cascader := services.NewCommitCascader()

	s, err := shipment.NewShipment(kernel.NewUUID(), "S5")
	require.NoError(t, err)
	b, err := box.NewBox(kernel.NewUUID(), "B5")
	require.NoError(t, err)
	item := repackedItem(t, "X5", 2, b, now)
	preStatus := item.Status()
	content := services.BoxContents{Box: b, Items: []*tracking.TrackingItem{item}}

	_, err = cascader.CommitShipment(s, []services.BoxContents{content}, now)
	require.NoError(t, err)

	require.NoError(t, cascader.UncommitShipmentBox(content))

	assert.Equal(t, preStatus, item.Status(), "uncommit restores the pre-commit status")
	for _, piece := range item.Pieces() {
		assert.Nil(t, piece.FlyingBackAt())
	}
}

func TestCommitCascader_CommitDelivery(t *testing.T) {
	now := time.Now()
	cascader := services.NewCommitCascader()

	t.Run("stamps_delivered_on_all_items", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "D1")
		require.NoError(t, err)
		p, err := delivery.NewPackBox(kernel.NewUUID(), "P1")
		require.NoError(t, err)
		a, err := tracking.NewTrackingItem(kernel.NewUUID(), "Y1", now)
		require.NoError(t, err)
		b, err := tracking.NewTrackingItem(kernel.NewUUID(), "Y2", now)
		require.NoError(t, err)

		err = cascader.CommitDelivery(d,
			[]services.PackBoxContents{{PackBox: p, Items: []*tracking.TrackingItem{a, b}}}, now)

		require.NoError(t, err)
		assert.True(t, d.IsCommitted())
		assert.Equal(t, now, *a.DeliveredAt())
		assert.Equal(t, now, *b.DeliveredAt())
	})

	t.Run("empty_delivery_rejected", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "D2")
		require.NoError(t, err)

		err = cascader.CommitDelivery(d, nil, now)

		require.ErrorIs(t, err, delivery.ErrContainerIsEmpty)
	})

	t.Run("uncommit_clears_delivered", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), "D3")
		require.NoError(t, err)
		p, err := delivery.NewPackBox(kernel.NewUUID(), "P3")
		require.NoError(t, err)
		item, err := tracking.NewTrackingItem(kernel.NewUUID(), "Y3", now)
		require.NoError(t, err)
		content := services.PackBoxContents{PackBox: p, Items: []*tracking.TrackingItem{item}}
		require.NoError(t, cascader.CommitDelivery(d, []services.PackBoxContents{content}, now))

		cascader.UncommitDeliveryPackBox(content)

		assert.Nil(t, item.DeliveredAt())
	})
}
