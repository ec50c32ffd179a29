package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetTrackingItemByNumberQueryIsNotConstructed = errors.New(
		"GetTrackingItemByNumberQuery must be created via NewGetTrackingItemByNumberQuery constructor",
	)

	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// GetTrackingItemByNumberQuery retrieves one parcel with its pieces and its
// derived pipeline status by tracking number.
type GetTrackingItemByNumberQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetTrackingItemByNumberQuery creates a query for a single parcel.
func NewGetTrackingItemByNumberQuery(trackingNumber string) (GetTrackingItemByNumberQuery, error) {
	if trackingNumber == "" {
		return GetTrackingItemByNumberQuery{}, ErrTrackingNumberIsRequired
	}

	return GetTrackingItemByNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingItemByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingItemByNumberQueryIsNotConstructed)
}

// TrackingNumber returns the number to look up.
func (q GetTrackingItemByNumberQuery) TrackingNumber() string {
	return q.trackingNumber
}

// TrackingItemResponse is the read model for one parcel. Status is derived
// from the stage timestamps at read time, never stored.
type TrackingItemResponse struct {
	TrackingNumber  string
	AlternateRef    string
	ChainKey        string
	AgentCode       string
	Status          tracking.Stage
	ReturnHeld      bool
	RegisteredAt    *time.Time
	DeliveredAt     *time.Time
	ReturnRequestAt *time.Time
	Pieces          []PieceResponse
}

// PieceResponse is the read model for one piece of a parcel.
type PieceResponse struct {
	Information    string
	Boxed          bool
	BoxedAt        *time.Time
	FlyingBackAt   *time.Time
	ReceivedAtVNAt *time.Time
}
