package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetFailedJobsQueryHandler lists the dead-letter table.
type GetFailedJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetFailedJobsQueryHandler creates a handler for failed job listings.
func NewGetFailedJobsQueryHandler(db *gorm.DB) GetFailedJobsQueryHandler {
	return GetFailedJobsQueryHandler{db: db}
}

// Handle executes the listing, most recent failures first.
func (h GetFailedJobsQueryHandler) Handle(
	ctx context.Context,
	query GetFailedJobsQuery,
) ([]FailedJobResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			tracking_number,
			payload,
			error_text,
			failed_at
		FROM failed_jobs
		ORDER BY failed_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]FailedJobResponse, 0)

	for rows.Next() {
		var job FailedJobResponse
		var payload []byte

		err = rows.Scan(
			&job.ID,
			&job.Kind,
			&job.TrackingNumber,
			&payload,
			&job.Error,
			&job.FailedAt,
		)
		if err != nil {
			return nil, err
		}

		job.Payload = string(payload)
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
