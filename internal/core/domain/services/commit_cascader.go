package services

import (
	"time"

	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/model/tracking"
)

// BoxContents pairs a box with the tracking items owning pieces inside it,
// loaded by the caller before running a cascade.
type BoxContents struct {
	Box   *box.Box
	Items []*tracking.TrackingItem
}

// PackBoxContents pairs a pack box with the tracking items packed inside it.
type PackBoxContents struct {
	PackBox *delivery.PackBox
	Items   []*tracking.TrackingItem
}

// CommitCascader is the domain service running container commit and uncommit
// cascades over the items reachable through a container's boxes.
//
// The cascade mutates the loaded aggregates only; persistence and transaction
// control stay with the caller, so an item-level failure surfaces before
// anything is written and the surrounding transaction rolls back as a whole.
type CommitCascader struct{}

// NewCommitCascader creates a CommitCascader.
func NewCommitCascader() CommitCascader {
	return CommitCascader{}
}

// CommitShipment freezes the shipment and stamps flyingBack on every piece
// reachable through its boxes. Per parent item the contained pieces are
// stamped and the item promoted through the stage engine once all its pieces
// fly; a held item fails the whole cascade. Returns the notification payloads
// of all promoted items.
func (c CommitCascader) CommitShipment(
	s *shipment.Shipment,
	contents []BoxContents,
	now time.Time,
) ([]tracking.Notification, error) {
	type itemPieces struct {
		item *tracking.TrackingItem
		keys []string
	}

	// Collect piece keys per distinct parent item across all boxes.
	byItem := make(map[string]*itemPieces)
	order := make([]string, 0)
	total := 0
	for _, content := range contents {
		for _, item := range content.Items {
			keys := item.PieceKeysInBox(content.Box.ID())
			if len(keys) == 0 {
				continue
			}
			total += len(keys)
			id := item.ID().String()
			if entry, ok := byItem[id]; ok {
				entry.keys = append(entry.keys, keys...)
				continue
			}
			byItem[id] = &itemPieces{item: item, keys: keys}
			order = append(order, id)
		}
	}

	if err := s.Commit(now, total); err != nil {
		return nil, err
	}

	notifications := make([]tracking.Notification, 0, len(order))
	for _, id := range order {
		entry := byItem[id]
		notif, err := entry.item.AdvancePieces(entry.keys, tracking.StageFlyingBack, now)
		if err != nil {
			return nil, err
		}
		if notif != nil {
			notifications = append(notifications, *notif)
		}
	}
	return notifications, nil
}

// UncommitShipmentBox reverses a prior commit for one box being pulled out of
// a shipment: the flyingBack stamps of the box's pieces are cleared and each
// parent item's derived status recedes through the rollback entries.
func (c CommitCascader) UncommitShipmentBox(content BoxContents) error {
	for _, item := range content.Items {
		keys := item.PieceKeysInBox(content.Box.ID())
		if len(keys) == 0 {
			continue
		}
		if err := item.RevertPieces(keys, tracking.StageFlyingBack); err != nil {
			return err
		}
	}
	return nil
}

// CommitDelivery marks the delivery run as executed and stamps deliveredAt on
// every item reachable through its pack boxes. A held item fails the whole
// cascade. Delivery stamps are item-level and outside the notified stage set,
// so no notification payloads are produced.
func (c CommitCascader) CommitDelivery(
	d *delivery.Delivery,
	contents []PackBoxContents,
	now time.Time,
) error {
	total := 0
	for _, content := range contents {
		total += len(content.Items)
	}

	if err := d.Commit(now, total); err != nil {
		return err
	}

	for _, content := range contents {
		for _, item := range content.Items {
			if err := item.MarkDelivered(now); err != nil {
				return err
			}
		}
	}
	return nil
}

// UncommitDeliveryPackBox reverses a delivery commit for one pack box being
// pulled out: the deliveredAt stamps of its items are cleared.
func (c CommitCascader) UncommitDeliveryPackBox(content PackBoxContents) {
	for _, item := range content.Items {
		item.RevertDelivered()
	}
}
