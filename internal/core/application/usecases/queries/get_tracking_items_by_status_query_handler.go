package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parceltrack/internal/core/domain/model/tracking"
)

// GetTrackingItemsByStatusQueryHandler lists parcels by derived status
// straight from the database. Status never has a column of its own, so the
// handler translates the requested stage into predicates over the nullable
// stage timestamp columns.
type GetTrackingItemsByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingItemsByStatusQueryHandler creates a handler for status
// listings.
func NewGetTrackingItemsByStatusQueryHandler(db *gorm.DB) GetTrackingItemsByStatusQueryHandler {
	return GetTrackingItemsByStatusQueryHandler{db: db}
}

// TrackingItemListEntry is one row of a status listing. Pieces are not
// expanded here; use GetTrackingItemByNumber for the full picture.
type TrackingItemListEntry struct {
	TrackingNumber string
	AlternateRef   string
	ChainKey       string
	AgentCode      string
	Status         tracking.Stage
	ReturnHeld     bool
	RegisteredAt   *time.Time
	PieceCount     int
}

// Handle executes the listing, sorted by tracking number.
func (h GetTrackingItemsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingItemsByStatusQuery,
) ([]TrackingItemListEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.tracking_number,
			t.alternate_ref,
			t.chain_key,
			t.agent_code,
			t.registered_at,
			t.return_request_at,
			(SELECT COUNT(*) FROM pieces p WHERE p.tracking_item_id = t.id) AS piece_count
		FROM tracking_items t
		WHERE ` + statusPredicate(query.Status())

	args := make([]any, 0, 4)

	if query.ChainKey() != "" {
		sql += " AND t.chain_key = ?"
		args = append(args, query.ChainKey())
	}
	if query.AgentCode() != "" {
		sql += " AND t.agent_code = ?"
		args = append(args, query.AgentCode())
	}
	if query.From() != nil {
		sql += " AND t.registered_at >= ?"
		args = append(args, *query.From())
	}
	if query.To() != nil {
		sql += " AND t.registered_at < ?"
		args = append(args, *query.To())
	}

	sql += " ORDER BY t.tracking_number"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TrackingItemListEntry, 0)

	for rows.Next() {
		var entry TrackingItemListEntry
		var returnAt *time.Time

		err = rows.Scan(
			&entry.TrackingNumber,
			&entry.AlternateRef,
			&entry.ChainKey,
			&entry.AgentCode,
			&entry.RegisteredAt,
			&returnAt,
			&entry.PieceCount,
		)
		if err != nil {
			return nil, err
		}

		entry.Status = query.Status()
		entry.ReturnHeld = returnAt != nil
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
