package tracking

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for transition failures, classified via errors.Is.
var (
	// ErrInvalidTransition indicates a (current, target) stage pair that is
	// not in the transition allow-list.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReturnRequestActive indicates an attempt to move an item that is
	// frozen by an active return request.
	ErrReturnRequestActive = errors.New("return request is active")
)

// InvalidTransitionError reports a forbidden stage transition, naming the
// offending item so callers can render an actionable message.
type InvalidTransitionError struct {
	TrackingNumber string
	From           Stage
	To             Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.TrackingNumber, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ReturnRequestActiveError reports a pipeline move rejected because the item
// is held for return.
type ReturnRequestActiveError struct {
	TrackingNumber string
}

func (e *ReturnRequestActiveError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReturnRequestActive, e.TrackingNumber)
}

func (e *ReturnRequestActiveError) Unwrap() error {
	return ErrReturnRequestActive
}

// Notification is the payload produced by a forward transition, dispatched
// asynchronously to the legacy tracking consumer after the surrounding
// transaction commits. The stage name and ISO-8601 timestamp format are a
// stable external contract.
type Notification struct {
	TrackingNumber string
	Stage          Stage
	Timestamp      time.Time
}

// transitionRule describes one allow-list entry. Forward entries stamp one or
// more stage timestamps with the transition time (intake can skip stages, so
// a single move may backfill the skipped stamps). Rollback entries clear
// exactly the stamps listed and never produce a notification.
type transitionRule struct {
	stamps   []Stage
	clears   []Stage
	rollback bool
}

type transitionKey struct {
	from Stage
	to   Stage
}

// transitionRules is the fixed transition allow-list. Any pair not present
// here is an invalid transition, including backward moves that might look
// harmless; only the listed rollbacks are legal.
var transitionRules = map[transitionKey]transitionRule{
	{StageNew, StageRegistered}:          {stamps: []Stage{StageRegistered}},
	{StageNew, StageReceivedAtUS}:        {stamps: []Stage{StageRegistered, StageReceivedAtUS}},
	{StageNew, StageRepacking}:           {stamps: []Stage{StageRegistered, StageReceivedAtUS, StageRepacking}},
	{StageRegistered, StageReceivedAtUS}: {stamps: []Stage{StageReceivedAtUS}},
	{StageRegistered, StageRepacking}:    {stamps: []Stage{StageRepacking}},
	{StageReceivedAtUS, StageRepacking}:  {stamps: []Stage{StageRepacking}},
	{StageRepacking, StageRepacked}:      {stamps: []Stage{StageRepacked}},
	{StageRepacking, StageBoxed}:         {stamps: []Stage{StageRepacked, StageBoxed}},
	{StageRepacked, StageBoxed}:          {stamps: []Stage{StageBoxed}},
	{StageBoxed, StageFlyingBack}:        {stamps: []Stage{StageFlyingBack}},
	{StageFlyingBack, StageReceivedAtVN}: {stamps: []Stage{StageReceivedAtVN}},

	{StageRepacking, StageReceivedAtUS}: {clears: []Stage{StageRepacking}, rollback: true},
	{StageRepacked, StageRepacking}:     {clears: []Stage{StageRepacked}, rollback: true},
	{StageBoxed, StageRepacked}:         {clears: []Stage{StageBoxed}, rollback: true},
}

// lookupTransition returns the allow-list entry for (from, to).
func lookupTransition(from, to Stage) (transitionRule, bool) {
	rule, ok := transitionRules[transitionKey{from: from, to: to}]
	return rule, ok
}
