package tracking_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, now time.Time) *tracking.TrackingItem {
	t.Helper()
	item, err := tracking.NewTrackingItem(kernel.NewUUID(), "US123456789", now)
	require.NoError(t, err)
	return item
}

// advanceTo walks the item through forward transitions up to target.
func advanceTo(t *testing.T, item *tracking.TrackingItem, target tracking.Stage, now time.Time) {
	t.Helper()
	itemPath := []tracking.Stage{
		tracking.StageRegistered,
		tracking.StageReceivedAtUS,
		tracking.StageRepacking,
		tracking.StageRepacked,
	}
	for _, stage := range itemPath {
		if target.Before(stage) {
			return
		}
		_, err := item.Transition(stage, now)
		require.NoError(t, err)
		if stage == target {
			return
		}
	}

	pieceKeys := make([]string, 0)
	for _, p := range item.Pieces() {
		pieceKeys = append(pieceKeys, p.ID().String())
	}
	for _, stage := range []tracking.Stage{tracking.StageBoxed, tracking.StageFlyingBack, tracking.StageReceivedAtVN} {
		if target.Before(stage) {
			return
		}
		_, err := item.AdvancePieces(pieceKeys, stage, now)
		require.NoError(t, err)
		if stage == target {
			return
		}
	}
}

func TestNewTrackingItem(t *testing.T) {
	now := time.Now()

	t.Run("starts_at_new_with_single_piece", func(t *testing.T) {
		item := newItem(t, now)

		assert.Equal(t, tracking.StageNew, item.Status())
		assert.Len(t, item.Pieces(), 1)
		assert.Equal(t, now.Add(180*24*time.Hour), item.DeleteAt())
		assert.Nil(t, item.ReturnRequestAt())
	})

	t.Run("requires_tracking_number", func(t *testing.T) {
		_, err := tracking.NewTrackingItem(kernel.NewUUID(), "", now)

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validate", func(t *testing.T) {
		var item tracking.TrackingItem

		require.ErrorIs(t, item.Validate(), tracking.ErrTrackingItemIsNotConstructed)
	})
}

func TestTrackingItem_Transition_ForwardPath(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)

	notif, err := item.Transition(tracking.StageRegistered, now)
	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, "US123456789", notif.TrackingNumber)
	assert.Equal(t, tracking.StageRegistered, notif.Stage)
	assert.Equal(t, now, notif.Timestamp)
	assert.Equal(t, tracking.StageRegistered, item.Status())

	notif, err = item.Transition(tracking.StageReceivedAtUS, now)
	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, tracking.StageReceivedAtUS, item.Status())
}

func TestTrackingItem_Transition_MultiStamp(t *testing.T) {
	now := time.Now()

	t.Run("new_to_receivedAtUS_backfills_registered", func(t *testing.T) {
		item := newItem(t, now)

		notif, err := item.Transition(tracking.StageReceivedAtUS, now)

		require.NoError(t, err)
		assert.Equal(t, tracking.StageReceivedAtUS, notif.Stage)
		assert.NotNil(t, item.StageTime(tracking.StageRegistered))
		assert.NotNil(t, item.StageTime(tracking.StageReceivedAtUS))
	})

	t.Run("new_to_repacking_backfills_both", func(t *testing.T) {
		item := newItem(t, now)

		_, err := item.Transition(tracking.StageRepacking, now)

		require.NoError(t, err)
		assert.NotNil(t, item.StageTime(tracking.StageRegistered))
		assert.NotNil(t, item.StageTime(tracking.StageReceivedAtUS))
		assert.Equal(t, tracking.StageRepacking, item.Status())
	})
}

func TestTrackingItem_Transition_NoOp(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	_, err := item.Transition(tracking.StageRegistered, now)
	require.NoError(t, err)

	notif, err := item.Transition(tracking.StageRegistered, now.Add(time.Hour))

	require.NoError(t, err)
	assert.Nil(t, notif)
	assert.Equal(t, now, *item.StageTime(tracking.StageRegistered), "no-op must not restamp")
}

func TestTrackingItem_Transition_UnlistedPairFails(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)

	_, err := item.Transition(tracking.StageBoxed, now)

	require.ErrorIs(t, err, tracking.ErrInvalidTransition)
	assert.Equal(t, tracking.StageNew, item.Status(), "failed transition must not stamp")
}

func TestTrackingItem_Transition_Rollbacks(t *testing.T) {
	now := time.Now()

	t.Run("repacking_back_to_receivedAtUS", func(t *testing.T) {
		item := newItem(t, now)
		advanceTo(t, item, tracking.StageRepacking, now)

		notif, err := item.Transition(tracking.StageReceivedAtUS, now)

		require.NoError(t, err)
		assert.Nil(t, notif, "rollbacks produce no notification")
		assert.Equal(t, tracking.StageReceivedAtUS, item.Status())
		assert.Nil(t, item.StageTime(tracking.StageRepacking))
	})

	t.Run("boxed_back_to_repacked", func(t *testing.T) {
		item := newItem(t, now)
		advanceTo(t, item, tracking.StageBoxed, now)

		notif, err := item.Transition(tracking.StageRepacked, now)

		require.NoError(t, err)
		assert.Nil(t, notif)
		assert.Equal(t, tracking.StageRepacked, item.Status())
	})

	t.Run("arbitrary_backward_move_is_not_a_rollback", func(t *testing.T) {
		item := newItem(t, now)
		advanceTo(t, item, tracking.StageBoxed, now)

		_, err := item.Transition(tracking.StageRegistered, now)

		require.ErrorIs(t, err, tracking.ErrInvalidTransition)
	})
}

func TestTrackingItem_Transition_Monotonic(t *testing.T) {
	// Forward-only walks never decrease the derived status power.
	now := time.Now()
	item := newItem(t, now)
	previous := item.Status()

	for _, stage := range []tracking.Stage{
		tracking.StageRegistered,
		tracking.StageReceivedAtUS,
		tracking.StageRepacking,
		tracking.StageRepacked,
	} {
		_, err := item.Transition(stage, now)
		require.NoError(t, err)
		assert.True(t, item.Status().AtLeast(previous))
		previous = item.Status()
	}
}

func TestTrackingItem_ReturnFreeze(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageRepacking, now)
	require.NoError(t, item.RequestReturn(now))

	for _, target := range []tracking.Stage{
		tracking.StageRegistered,
		tracking.StageReceivedAtUS,
		tracking.StageRepacked,
		tracking.StageBoxed,
		tracking.StageRepacking, // even the current stage: the freeze runs before the no-op check
	} {
		_, err := item.Transition(target, now)
		require.ErrorIs(t, err, tracking.ErrReturnRequestActive, "target %s", target)
	}
}

func TestTrackingItem_RequestReturn(t *testing.T) {
	now := time.Now()

	t.Run("rejected_once_boxed", func(t *testing.T) {
		item := newItem(t, now)
		advanceTo(t, item, tracking.StageBoxed, now)

		err := item.RequestReturn(now)

		require.ErrorIs(t, err, tracking.ErrCannotHoldTrackingAfterBeingBoxed)
		assert.Nil(t, item.ReturnRequestAt())
	})

	t.Run("repeat_request_keeps_original_stamp", func(t *testing.T) {
		item := newItem(t, now)
		require.NoError(t, item.RequestReturn(now))

		require.NoError(t, item.RequestReturn(now.Add(time.Hour)))

		assert.Equal(t, now, *item.ReturnRequestAt())
	})

	t.Run("cancel_unfreezes", func(t *testing.T) {
		item := newItem(t, now)
		require.NoError(t, item.RequestReturn(now))

		item.CancelReturn()

		_, err := item.Transition(tracking.StageRegistered, now)
		require.NoError(t, err)
	})
}

func TestTrackingItem_AdvancePieces_AllOrNothing(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageRepacked, now)
	second, err := item.SplitPiece("carton 2 of 2")
	require.NoError(t, err)
	first := item.Pieces()[0]

	// Boxing only the first piece must not promote the item.
	notif, err := item.AdvancePieces([]string{first.ID().String()}, tracking.StageBoxed, now)
	require.NoError(t, err)
	assert.Nil(t, notif)
	assert.Equal(t, tracking.StageRepacked, item.Status())

	// Boxing the last piece promotes immediately.
	notif, err = item.AdvancePieces([]string{second.ID().String()}, tracking.StageBoxed, now)
	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, tracking.StageBoxed, notif.Stage)
	assert.Equal(t, tracking.StageBoxed, item.Status())
}

func TestTrackingItem_AdvancePieces_SinglePiece(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageRepacked, now)
	piece := item.Pieces()[0]

	notif, err := item.AdvancePieces([]string{piece.ID().String()}, tracking.StageBoxed, now)

	require.NoError(t, err)
	require.NotNil(t, notif)
	assert.Equal(t, tracking.StageBoxed, item.Status())
}

func TestTrackingItem_AdvancePieces_ByInformationLabel(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageRepacked, now)

	// The default piece is labeled with the tracking number.
	notif, err := item.AdvancePieces([]string{"US123456789"}, tracking.StageBoxed, now)

	require.NoError(t, err)
	require.NotNil(t, notif)
}

func TestTrackingItem_AdvancePieces_UnknownKey(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageRepacked, now)

	_, err := item.AdvancePieces([]string{"no-such-piece"}, tracking.StageBoxed, now)

	require.ErrorIs(t, err, tracking.ErrPiecesNotFound)
	var pnf *tracking.PiecesNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, []string{"no-such-piece"}, pnf.Missing)
}

func TestTrackingItem_AdvancePieces_NonPieceStage(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)

	_, err := item.AdvancePieces([]string{"US123456789"}, tracking.StageRepacked, now)

	require.Error(t, err)
}

func TestTrackingItem_RevertPieces_RoundTrip(t *testing.T) {
	now := time.Now()
	item := newItem(t, now)
	advanceTo(t, item, tracking.StageBoxed, now)
	piece := item.Pieces()[0]
	keys := []string{piece.ID().String()}

	_, err := item.AdvancePieces(keys, tracking.StageFlyingBack, now)
	require.NoError(t, err)
	require.Equal(t, tracking.StageFlyingBack, item.Status())

	require.NoError(t, item.RevertPieces(keys, tracking.StageFlyingBack))

	assert.Nil(t, item.Pieces()[0].FlyingBackAt())
	assert.Nil(t, item.StageTime(tracking.StageFlyingBack))
	assert.Equal(t, tracking.StageBoxed, item.Status(), "derived status recedes to pre-commit value")
}

func TestTrackingItem_SplitAndDeletePiece(t *testing.T) {
	now := time.Now()

	t.Run("delete_unboxed_piece", func(t *testing.T) {
		item := newItem(t, now)
		extra, err := item.SplitPiece("carton 2")
		require.NoError(t, err)

		require.NoError(t, item.DeletePiece(extra.ID()))
		assert.Len(t, item.Pieces(), 1)
	})

	t.Run("cannot_delete_boxed_piece", func(t *testing.T) {
		item := newItem(t, now)
		extra, err := item.SplitPiece("carton 2")
		require.NoError(t, err)
		require.NoError(t, extra.AssignToBox(kernel.NewUUID()))

		require.ErrorIs(t, item.DeletePiece(extra.ID()), tracking.ErrPieceAlreadyBoxed)
	})

	t.Run("cannot_delete_last_piece", func(t *testing.T) {
		item := newItem(t, now)

		require.ErrorIs(t, item.DeletePiece(item.Pieces()[0].ID()), tracking.ErrCannotDeleteLastPiece)
	})
}

func TestTrackingItem_MarkDelivered(t *testing.T) {
	now := time.Now()

	t.Run("stamps_and_reverts", func(t *testing.T) {
		item := newItem(t, now)

		require.NoError(t, item.MarkDelivered(now))
		assert.Equal(t, now, *item.DeliveredAt())

		item.RevertDelivered()
		assert.Nil(t, item.DeliveredAt())
	})

	t.Run("held_item_rejects_delivery", func(t *testing.T) {
		item := newItem(t, now)
		require.NoError(t, item.RequestReturn(now))

		require.ErrorIs(t, item.MarkDelivered(now), tracking.ErrReturnRequestActive)
	})
}

func TestTrackingItem_AssignToPackBox(t *testing.T) {
	now := time.Now()

	t.Run("assign_and_reassign_same_box", func(t *testing.T) {
		item := newItem(t, now)
		packBoxID := kernel.NewUUID()

		require.NoError(t, item.AssignToPackBox(packBoxID))
		require.NoError(t, item.AssignToPackBox(packBoxID))
		assert.True(t, item.PackBoxID().IsEqual(packBoxID))
	})

	t.Run("different_box_rejected", func(t *testing.T) {
		item := newItem(t, now)
		require.NoError(t, item.AssignToPackBox(kernel.NewUUID()))

		require.ErrorIs(t, item.AssignToPackBox(kernel.NewUUID()), tracking.ErrTrackingItemAlreadyPacked)
	})

	t.Run("held_item_rejected", func(t *testing.T) {
		item := newItem(t, now)
		require.NoError(t, item.RequestReturn(now))

		require.ErrorIs(t, item.AssignToPackBox(kernel.NewUUID()), tracking.ErrReturnRequestActive)
	})
}

func TestRestoreTrackingItem(t *testing.T) {
	now := time.Now()
	id := kernel.NewUUID()
	piece, err := tracking.RestorePiece(kernel.NewUUID(), "carton 1", nil, &now, nil, nil)
	require.NoError(t, err)

	item, err := tracking.RestoreTrackingItem(
		id, "US42", "ALT-1", "chain-7", "AG01", nil, nil,
		map[tracking.Stage]time.Time{
			tracking.StageRegistered:   now,
			tracking.StageReceivedAtUS: now,
			tracking.StageRepacking:    now,
			tracking.StageRepacked:     now,
			tracking.StageBoxed:        now,
		},
		nil, nil, now.Add(180*24*time.Hour), []*tracking.Piece{piece},
	)

	require.NoError(t, err)
	assert.Equal(t, tracking.StageBoxed, item.Status())
	assert.Equal(t, "chain-7", item.ChainKey())
	assert.Equal(t, "AG01", item.AgentCode())

	t.Run("requires_pieces", func(t *testing.T) {
		_, err := tracking.RestoreTrackingItem(
			id, "US42", "", "", "", nil, nil, nil, nil, nil, now, nil)

		require.Error(t, err)
	})
}
