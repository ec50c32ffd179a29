package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/guard"
)

var ErrGetTrackingItemsByStatusQueryIsNotConstructed = errors.New(
	"GetTrackingItemsByStatusQuery must be created via NewGetTrackingItemsByStatusQuery constructor",
)

// GetTrackingItemsByStatusQuery lists parcels whose derived status equals the
// given stage. Chain, agent and registration date range filters are optional
// and combine with AND.
type GetTrackingItemsByStatusQuery struct { //nolint:recvcheck //using for validation
	status    tracking.Stage
	chainKey  string
	agentCode string
	from      *time.Time
	to        *time.Time

	guard guard.ConstructorGuard
}

// NewGetTrackingItemsByStatusQuery creates a status listing query. Empty
// chainKey/agentCode and nil range bounds mean no filtering on that field.
func NewGetTrackingItemsByStatusQuery(
	status tracking.Stage,
	chainKey, agentCode string,
	from, to *time.Time,
) (GetTrackingItemsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetTrackingItemsByStatusQuery{}, err
	}

	return GetTrackingItemsByStatusQuery{
		status:    status,
		chainKey:  chainKey,
		agentCode: agentCode,
		from:      from,
		to:        to,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingItemsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingItemsByStatusQueryIsNotConstructed)
}

// Status returns the derived status the listing filters on.
func (q GetTrackingItemsByStatusQuery) Status() tracking.Stage {
	return q.status
}

// ChainKey returns the chain filter, empty when unset.
func (q GetTrackingItemsByStatusQuery) ChainKey() string {
	return q.chainKey
}

// AgentCode returns the agent filter, empty when unset.
func (q GetTrackingItemsByStatusQuery) AgentCode() string {
	return q.agentCode
}

// From returns the lower registration date bound, nil when unset.
func (q GetTrackingItemsByStatusQuery) From() *time.Time {
	return q.from
}

// To returns the upper registration date bound, nil when unset.
func (q GetTrackingItemsByStatusQuery) To() *time.Time {
	return q.to
}
