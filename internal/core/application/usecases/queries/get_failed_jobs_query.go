package queries

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/guard"
)

var ErrGetFailedJobsQueryIsNotConstructed = errors.New(
	"GetFailedJobsQuery must be created via NewGetFailedJobsQuery constructor",
)

// defaultFailedJobsLimit caps the listing when no limit is given.
const defaultFailedJobsLimit = 50

// GetFailedJobsQuery lists dead-lettered side effects for operator
// inspection, most recent first.
type GetFailedJobsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetFailedJobsQuery creates a failed job listing query. A non-positive
// limit falls back to the default.
func NewGetFailedJobsQuery(limit int) GetFailedJobsQuery {
	if limit <= 0 {
		limit = defaultFailedJobsLimit
	}

	return GetFailedJobsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetFailedJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetFailedJobsQueryIsNotConstructed)
}

// Limit returns the maximum number of entries to list.
func (q GetFailedJobsQuery) Limit() int {
	return q.limit
}

// FailedJobResponse is one dead-lettered side effect.
type FailedJobResponse struct {
	ID             string
	Kind           string
	TrackingNumber string
	Payload        string
	Error          string
	FailedAt       time.Time
}
