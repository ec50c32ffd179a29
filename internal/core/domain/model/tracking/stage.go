package tracking

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Stage represents a step of the parcel pipeline, from intake at the US
// warehouse through international transit to arrival at the VN warehouse.
//
// Pipeline order:
//
//	New ──> Registered ──> ReceivedAtUS ──> Repacking ──> Repacked ──> Boxed ──> FlyingBack ──> ReceivedAtVN
//
// A tracking item's stage is never stored; it is derived from the item's
// nullable stage timestamps (see TrackingItem.Status). Stages are ordered by
// Power, not by declaration order, and every stage carries a unique power
// value so identity comparison with == stays unambiguous.
type Stage int

const (
	// StageNew is the implicit stage of an item with no timestamps yet.
	StageNew Stage = iota

	// StageRegistered means the item was announced to the US warehouse.
	StageRegistered

	// StageReceivedAtUS means the physical parcel arrived at the US warehouse.
	StageReceivedAtUS

	// StageRepacking means the parcel is being repacked for transit.
	StageRepacking

	// StageRepacked means repacking finished and the pieces await boxing.
	StageRepacked

	// StageBoxed means every piece of the item sits in a transit box.
	StageBoxed

	// StageFlyingBack means the item left the US on a committed shipment.
	StageFlyingBack

	// StageReceivedAtVN means the item arrived at the VN warehouse.
	StageReceivedAtVN
)

// stagePowers orders stages for status derivation and comparisons.
// The gap before StageReceivedAtVN is inherited from retired VN-side stages
// and is kept so persisted power values stay stable.
var stagePowers = map[Stage]int{
	StageNew:          0,
	StageRegistered:   1,
	StageReceivedAtUS: 2,
	StageRepacking:    3,
	StageRepacked:     4,
	StageBoxed:        5,
	StageFlyingBack:   6,
	StageReceivedAtVN: 8,
}

var stageNames = map[Stage]string{
	StageNew:          "new",
	StageRegistered:   "registered",
	StageReceivedAtUS: "receivedAtUS",
	StageRepacking:    "repacking",
	StageRepacked:     "repacked",
	StageBoxed:        "boxed",
	StageFlyingBack:   "flyingBack",
	StageReceivedAtVN: "receivedAtVN",
}

// stampedStages are the stages that carry their own timestamp on items and,
// for the piece-level subset, on pieces. StageNew is derived, never stamped.
var stampedStages = []Stage{
	StageRegistered,
	StageReceivedAtUS,
	StageRepacking,
	StageRepacked,
	StageBoxed,
	StageFlyingBack,
	StageReceivedAtVN,
}

// pieceStages are the stages tracked per piece. An item only reaches these
// stages once all of its pieces carry the corresponding stamp.
var pieceStages = map[Stage]bool{
	StageBoxed:        true,
	StageFlyingBack:   true,
	StageReceivedAtVN: true,
}

// Power returns the rank of the stage in the pipeline ordering.
func (s Stage) Power() int {
	return stagePowers[s]
}

// Before reports whether s ranks strictly lower than other.
func (s Stage) Before(other Stage) bool {
	return s.Power() < other.Power()
}

// AtLeast reports whether s ranks at or above other.
func (s Stage) AtLeast(other Stage) bool {
	return s.Power() >= other.Power()
}

// IsPieceStage reports whether the stage is stamped per piece and therefore
// subject to all-or-nothing aggregation.
func (s Stage) IsPieceStage() bool {
	return pieceStages[s]
}

// String returns the wire name of the stage, e.g. "receivedAtUS".
// This name is part of the notification payload contract.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate checks that the stage is one of the known pipeline stages.
func (s Stage) Validate() error {
	if _, ok := stageNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// StageFromString resolves a wire name back to a Stage.
func StageFromString(name string) (Stage, error) {
	for stage, n := range stageNames {
		if n == name {
			return stage, nil
		}
	}
	return StageNew, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage name", name))
}
