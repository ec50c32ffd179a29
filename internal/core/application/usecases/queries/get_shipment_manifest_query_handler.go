package queries

import (
	"context"

	"gorm.io/gorm"

	"parceltrack/internal/pkg/errs"
)

// GetShipmentManifestQueryHandler builds shipment manifests with one grouped
// query over boxes and pieces.
type GetShipmentManifestQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentManifestQueryHandler creates a handler for manifest queries.
func NewGetShipmentManifestQueryHandler(db *gorm.DB) GetShipmentManifestQueryHandler {
	return GetShipmentManifestQueryHandler{db: db}
}

// Handle executes the manifest query. Fails with errs.ErrObjectNotFound when
// the shipment code is unknown.
func (h GetShipmentManifestQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentManifestQuery,
) (ShipmentManifestResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentManifestResponse{}, err
	}

	manifest := ShipmentManifestResponse{ShipmentCode: query.ShipmentCode()}

	var shipmentID string
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, committed_at
		FROM shipments
		WHERE code = ?
	`, query.ShipmentCode()).Row()
	if err := row.Scan(&shipmentID, &manifest.CommittedAt); err != nil {
		return ShipmentManifestResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"shipmentCode", query.ShipmentCode(), err)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.code,
			b.weight_kg,
			COUNT(p.id) AS piece_count
		FROM boxes b
		LEFT JOIN pieces p ON p.box_id = b.id
		WHERE b.shipment_id = ?
		GROUP BY b.id, b.code, b.weight_kg
		ORDER BY b.code
	`, shipmentID).Rows()
	if err != nil {
		return ShipmentManifestResponse{}, err
	}
	defer rows.Close()

	manifest.Boxes = make([]ManifestBoxEntry, 0)

	for rows.Next() {
		var entry ManifestBoxEntry

		if err = rows.Scan(&entry.BoxCode, &entry.WeightKg, &entry.PieceCount); err != nil {
			return ShipmentManifestResponse{}, err
		}

		manifest.Boxes = append(manifest.Boxes, entry)
		manifest.TotalPieces += entry.PieceCount
		manifest.TotalWeightKg += entry.WeightKg
	}

	if err = rows.Err(); err != nil {
		return ShipmentManifestResponse{}, err
	}

	return manifest, nil
}
