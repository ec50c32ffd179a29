package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/metrics"
)

// purgeBatchSize bounds one sweep pass.
const purgeBatchSize = 200

// PurgeExpiredTrackingItemsCommandHandler removes parcels past their retention
// deadline. Parcels still sitting in a container are skipped: purging them
// would silently change container contents, so they wait until unloaded.
type PurgeExpiredTrackingItemsCommandHandler struct {
	uowFactory TrackingUoWFactory
	metrics    *metrics.Metrics
}

// NewPurgeExpiredTrackingItemsCommandHandler creates a handler for the
// retention sweep.
func NewPurgeExpiredTrackingItemsCommandHandler(
	uowFactory TrackingUoWFactory,
	m *metrics.Metrics,
) PurgeExpiredTrackingItemsCommandHandler {
	return PurgeExpiredTrackingItemsCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle deletes expired parcels that are not referenced by any container.
func (h *PurgeExpiredTrackingItemsCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredTrackingItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.TrackingItemRepository()
	expired, err := itemRepo.GetAllExpired(ctx, time.Now().UTC(), purgeBatchSize)
	if err != nil {
		return err
	}

	purged := 0
	for _, item := range expired {
		if isContained(item) {
			continue
		}

		if err = itemRepo.Delete(ctx, item.ID()); err != nil {
			return err
		}
		purged++
	}

	if purged > 0 {
		slog.Info("expired tracking items purged", "count", purged)
		h.metrics.ItemsPurged.Add(float64(purged))
	}

	return uow.Commit(ctx)
}

// isContained reports whether any container still references the parcel.
func isContained(item *tracking.TrackingItem) bool {
	if item.PackBoxID() != nil {
		return true
	}

	for _, piece := range item.Pieces() {
		if piece.BoxID() != nil {
			return true
		}
	}

	return false
}
