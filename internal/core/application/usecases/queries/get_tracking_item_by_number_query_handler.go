package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parceltrack/internal/pkg/errs"
)

// GetTrackingItemByNumberQueryHandler reads one parcel straight from the
// database, bypassing the domain model for read performance.
type GetTrackingItemByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingItemByNumberQueryHandler creates a handler for single-parcel
// lookups.
func NewGetTrackingItemByNumberQueryHandler(db *gorm.DB) GetTrackingItemByNumberQueryHandler {
	return GetTrackingItemByNumberQueryHandler{db: db}
}

// Handle executes the lookup. Fails with errs.ErrObjectNotFound when no
// parcel carries the number.
func (h GetTrackingItemByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingItemByNumberQuery,
) (TrackingItemResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackingItemResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			alternate_ref,
			chain_key,
			agent_code,
			registered_at,
			received_at_us_at,
			repacking_at,
			repacked_at,
			boxed_at,
			flying_back_at,
			received_at_vn_at,
			delivered_at,
			return_request_at
		FROM tracking_items
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Rows()
	if err != nil {
		return TrackingItemResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackingItemResponse{}, err
		}
		return TrackingItemResponse{}, errs.NewObjectNotFoundError("trackingNumber", query.TrackingNumber())
	}

	var (
		item        TrackingItemResponse
		itemID      string
		stamps      stageStamps
		deliveredAt *time.Time
		returnAt    *time.Time
	)

	err = rows.Scan(
		&itemID,
		&item.TrackingNumber,
		&item.AlternateRef,
		&item.ChainKey,
		&item.AgentCode,
		&stamps.registeredAt,
		&stamps.receivedAtUSAt,
		&stamps.repackingAt,
		&stamps.repackedAt,
		&stamps.boxedAt,
		&stamps.flyingBackAt,
		&stamps.receivedAtVNAt,
		&deliveredAt,
		&returnAt,
	)
	if err != nil {
		return TrackingItemResponse{}, err
	}

	item.Status = stamps.status()
	item.ReturnHeld = returnAt != nil
	item.RegisteredAt = stamps.registeredAt
	item.DeliveredAt = deliveredAt
	item.ReturnRequestAt = returnAt

	if err = rows.Err(); err != nil {
		return TrackingItemResponse{}, err
	}
	_ = rows.Close()

	item.Pieces, err = h.loadPieces(ctx, itemID)
	if err != nil {
		return TrackingItemResponse{}, err
	}

	return item, nil
}

func (h GetTrackingItemByNumberQueryHandler) loadPieces(
	ctx context.Context,
	itemID string,
) ([]PieceResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			information,
			box_id,
			boxed_at,
			flying_back_at,
			received_at_vn_at
		FROM pieces
		WHERE tracking_item_id = ?
		ORDER BY information
	`, itemID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pieces := make([]PieceResponse, 0)

	for rows.Next() {
		var piece PieceResponse
		var boxID *string

		err = rows.Scan(
			&piece.Information,
			&boxID,
			&piece.BoxedAt,
			&piece.FlyingBackAt,
			&piece.ReceivedAtVNAt,
		)
		if err != nil {
			return nil, err
		}

		piece.Boxed = boxID != nil
		pieces = append(pieces, piece)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pieces, nil
}
