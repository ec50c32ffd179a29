package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetLotWeightRollupQueryHandler aggregates box weights per lot.
type GetLotWeightRollupQueryHandler struct {
	db *gorm.DB
}

// NewGetLotWeightRollupQueryHandler creates a handler for lot weight rollups.
func NewGetLotWeightRollupQueryHandler(db *gorm.DB) GetLotWeightRollupQueryHandler {
	return GetLotWeightRollupQueryHandler{db: db}
}

// Handle executes the rollup, one entry per lot ordered by lot index. Lots
// with no boxes appear with a zero count and weight.
func (h GetLotWeightRollupQueryHandler) Handle(
	ctx context.Context,
	query GetLotWeightRollupQuery,
) ([]LotWeightEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.label,
			l.idx,
			COUNT(b.id)             AS box_count,
			COALESCE(SUM(b.weight_kg), 0) AS total_weight_kg
		FROM lots l
		LEFT JOIN boxes b ON b.lot_id = l.id
		WHERE l.label = ?
		GROUP BY l.id, l.label, l.idx
		ORDER BY l.idx
	`, query.Label()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]LotWeightEntry, 0)

	for rows.Next() {
		var entry LotWeightEntry

		err = rows.Scan(
			&entry.Label,
			&entry.Index,
			&entry.BoxCount,
			&entry.TotalWeightKg,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
