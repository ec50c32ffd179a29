package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// retentionPeriod is the soft-expiry window applied at creation. Expired
// items are swept by a background job, never deleted while a container still
// references them.
const retentionPeriod = 180 * 24 * time.Hour

var (
	// ErrTrackingItemIsNotConstructed is returned when using an improperly
	// initialized TrackingItem.
	ErrTrackingItemIsNotConstructed = errors.New(
		"TrackingItem must be created via NewTrackingItem or RestoreTrackingItem")

	// ErrTrackingNumberIsRequired is returned when creating an item without a
	// tracking number.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("trackingNumber")

	// ErrCannotHoldTrackingAfterBeingBoxed indicates an attempt to place a
	// return request on an item that downstream logistics already boxed.
	ErrCannotHoldTrackingAfterBeingBoxed = errors.New("cannot hold tracking after being boxed")

	// ErrPiecesNotFound indicates that a caller named piece keys that do not
	// exist under the item.
	ErrPiecesNotFound = errors.New("pieces not found")

	// ErrTrackingItemAlreadyPacked indicates an item that already belongs to a
	// different pack box on the VN side.
	ErrTrackingItemAlreadyPacked = errors.New("tracking item is already in a pack box")

	// ErrCannotDeleteLastPiece guards against removing the only piece of an
	// item; an item always has at least one piece.
	ErrCannotDeleteLastPiece = errors.New("cannot delete the last piece of a tracking item")
)

// PiecesNotFoundError reports piece keys that matched no piece of the item.
type PiecesNotFoundError struct {
	TrackingNumber string
	Missing        []string
}

func (e *PiecesNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s has no pieces %s",
		ErrPiecesNotFound, e.TrackingNumber, strings.Join(e.Missing, ", "))
}

func (e *PiecesNotFoundError) Unwrap() error {
	return ErrPiecesNotFound
}

// CannotHoldTrackingError reports a rejected return request on an item whose
// derived status already reached Boxed.
type CannotHoldTrackingError struct {
	TrackingNumber string
	Status         Stage
}

func (e *CannotHoldTrackingError) Error() string {
	return fmt.Sprintf("%s: %s is already %s", ErrCannotHoldTrackingAfterBeingBoxed, e.TrackingNumber, e.Status)
}

func (e *CannotHoldTrackingError) Unwrap() error {
	return ErrCannotHoldTrackingAfterBeingBoxed
}

// TrackingItem is the aggregate root for one parcel tracked end-to-end from
// US intake to VN delivery. It owns its pieces and derives its pipeline
// status from its nullable stage timestamps.
//
// Key invariants:
//   - status is derived, never stored: the highest-power stage with a
//     non-nil timestamp, StageNew otherwise
//   - transitions follow the fixed allow-list; an active return request
//     freezes the item before any other rule is evaluated
//   - piece-level stages (boxed, flyingBack, receivedAtVN) only promote the
//     item once every piece carries the stamp
//   - a return request cannot be placed once the item reached Boxed
type TrackingItem struct {
	id kernel.UUID
	// trackingNumber is the human-facing carrier number, unique per active item
	trackingNumber string
	// alternateRef is an optional secondary reference from the selling platform
	alternateRef string
	// chainKey groups related items (e.g. split packages) for joint reporting
	chainKey string
	// agentCode identifies the intake agent, empty for direct customers
	agentCode string
	// warehouseID references the intake warehouse, nil when unknown
	warehouseID *kernel.UUID
	// packBoxID references the VN-side pack box holding the item, nil until packed
	packBoxID *kernel.UUID

	// stageTimes holds the nullable pipeline timestamps; absence means the
	// stage was never reached
	stageTimes map[Stage]time.Time

	deliveredAt     *time.Time
	returnRequestAt *time.Time
	// deleteAt is the soft-expiry deadline stamped at creation
	deleteAt time.Time

	pieces []*Piece

	guard kernel.ConstructorGuard
}

// NewTrackingItem creates an item at StageNew with a single default piece and
// the soft-expiry deadline 180 days out. Optional attributes (alternate
// reference, chain key, agent, warehouse) are set through their setters.
func NewTrackingItem(id kernel.UUID, trackingNumber string, now time.Time) (*TrackingItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, ErrTrackingNumberIsRequired
	}

	defaultPiece, err := NewPiece(kernel.NewUUID(), trackingNumber)
	if err != nil {
		return nil, err
	}

	return &TrackingItem{
		id:             id,
		trackingNumber: trackingNumber,
		stageTimes:     make(map[Stage]time.Time),
		deleteAt:       now.Add(retentionPeriod),
		pieces:         []*Piece{defaultPiece},
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingItem reconstructs an item from persistent storage with its
// full timestamp and piece state.
func RestoreTrackingItem(
	id kernel.UUID,
	trackingNumber, alternateRef, chainKey, agentCode string,
	warehouseID, packBoxID *kernel.UUID,
	stageTimes map[Stage]time.Time,
	deliveredAt, returnRequestAt *time.Time,
	deleteAt time.Time,
	pieces []*Piece,
) (*TrackingItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, ErrTrackingNumberIsRequired
	}
	if len(pieces) == 0 {
		return nil, errs.NewValueIsRequiredError("pieces")
	}
	for _, piece := range pieces {
		if err := piece.Validate(); err != nil {
			return nil, err
		}
	}

	times := make(map[Stage]time.Time, len(stageTimes))
	for stage, at := range stageTimes {
		if err := stage.Validate(); err != nil {
			return nil, err
		}
		times[stage] = at
	}

	return &TrackingItem{
		id:              id,
		trackingNumber:  trackingNumber,
		alternateRef:    alternateRef,
		chainKey:        chainKey,
		agentCode:       agentCode,
		warehouseID:     warehouseID,
		packBoxID:       packBoxID,
		stageTimes:      times,
		deliveredAt:     deliveredAt,
		returnRequestAt: returnRequestAt,
		deleteAt:        deleteAt,
		pieces:          pieces,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through a constructor.
func (t *TrackingItem) Validate() error {
	if t == nil {
		return ErrTrackingItemIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingItemIsNotConstructed)
}

// IsEqual compares items by identity.
func (t *TrackingItem) IsEqual(other *TrackingItem) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the item identity.
func (t *TrackingItem) ID() kernel.UUID { return t.id }

// TrackingNumber returns the human-facing carrier number.
func (t *TrackingItem) TrackingNumber() string { return t.trackingNumber }

// AlternateRef returns the optional secondary reference.
func (t *TrackingItem) AlternateRef() string { return t.alternateRef }

// ChainKey returns the label linking related items.
func (t *TrackingItem) ChainKey() string { return t.chainKey }

// AgentCode returns the intake agent code, empty for direct customers.
func (t *TrackingItem) AgentCode() string { return t.agentCode }

// WarehouseID returns the intake warehouse reference, nil when unknown.
func (t *TrackingItem) WarehouseID() *kernel.UUID { return copyUUIDPtr(t.warehouseID) }

// PackBoxID returns the VN-side pack box holding the item, nil until packed.
func (t *TrackingItem) PackBoxID() *kernel.UUID { return copyUUIDPtr(t.packBoxID) }

// DeliveredAt returns the final delivery stamp set by a delivery commit.
func (t *TrackingItem) DeliveredAt() *time.Time { return copyTimePtr(t.deliveredAt) }

// ReturnRequestAt returns the hold stamp, nil when the item is not frozen.
func (t *TrackingItem) ReturnRequestAt() *time.Time { return copyTimePtr(t.returnRequestAt) }

// DeleteAt returns the soft-expiry deadline.
func (t *TrackingItem) DeleteAt() time.Time { return t.deleteAt }

// Pieces returns the item's pieces. The slice is a copy; the pieces are the
// live entities owned by the aggregate.
func (t *TrackingItem) Pieces() []*Piece {
	pieces := make([]*Piece, len(t.pieces))
	copy(pieces, t.pieces)
	return pieces
}

// StageTime returns the item-level timestamp for a stage, nil when unset.
func (t *TrackingItem) StageTime(stage Stage) *time.Time {
	if at, ok := t.stageTimes[stage]; ok {
		return &at
	}
	return nil
}

// SetAlternateRef sets the optional secondary reference.
func (t *TrackingItem) SetAlternateRef(ref string) { t.alternateRef = ref }

// SetChainKey sets the label linking related items.
func (t *TrackingItem) SetChainKey(key string) { t.chainKey = key }

// AssignAgent sets the intake agent code.
func (t *TrackingItem) AssignAgent(code string) { t.agentCode = code }

// AssignWarehouse sets the intake warehouse reference.
func (t *TrackingItem) AssignWarehouse(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	t.warehouseID = &warehouseID
	return nil
}

// Status derives the item's pipeline stage: the highest-power stage with a
// non-nil timestamp, StageNew when no timestamp is set. The result is
// computed on every call and never cached, so it cannot go stale after
// partial piece updates.
func (t *TrackingItem) Status() Stage {
	status := StageNew
	for _, stage := range stampedStages {
		if _, ok := t.stageTimes[stage]; ok && status.Before(stage) {
			status = stage
		}
	}
	return status
}

// Transition moves the item to the target stage through the allow-list.
//
// Rules, in evaluation order:
//  1. an active return request rejects every transition attempt
//  2. a transition to the current status is a silent no-op
//  3. the (current, target) pair must be in the allow-list
//
// A forward transition stamps the rule's timestamps with now and returns the
// notification payload for asynchronous dispatch; a rollback clears the
// rule's timestamps and returns no payload.
func (t *TrackingItem) Transition(target Stage, now time.Time) (*Notification, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if t.returnRequestAt != nil {
		return nil, &ReturnRequestActiveError{TrackingNumber: t.trackingNumber}
	}

	current := t.Status()
	if current == target {
		return nil, nil
	}

	rule, ok := lookupTransition(current, target)
	if !ok {
		return nil, &InvalidTransitionError{TrackingNumber: t.trackingNumber, From: current, To: target}
	}

	for _, stage := range rule.stamps {
		t.stageTimes[stage] = now
	}
	for _, stage := range rule.clears {
		delete(t.stageTimes, stage)
	}

	if rule.rollback {
		return nil, nil
	}
	return &Notification{TrackingNumber: t.trackingNumber, Stage: target, Timestamp: now}, nil
}

// AdvancePieces stamps a piece-level stage on the named pieces and promotes
// the item itself once every piece carries the stamp. Pieces are addressed by
// ID string or information label; unmatched keys fail with PiecesNotFound.
//
// Partial progress is legal: with only some pieces stamped the item keeps its
// current status and no notification is produced. Stamping the last missing
// piece promotes the item through Transition, returning its notification.
func (t *TrackingItem) AdvancePieces(pieceKeys []string, target Stage, now time.Time) (*Notification, error) {
	if !target.IsPieceStage() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%s is not a piece-level stage", target))
	}
	if t.returnRequestAt != nil {
		return nil, &ReturnRequestActiveError{TrackingNumber: t.trackingNumber}
	}

	pieces, err := t.resolvePieces(pieceKeys)
	if err != nil {
		return nil, err
	}

	for _, piece := range pieces {
		if err = piece.stamp(target, now); err != nil {
			return nil, err
		}
	}

	if !t.allPiecesReached(target) {
		return nil, nil
	}
	return t.Transition(target, now)
}

// RevertPieces clears a piece-level stamp on the named pieces and, when the
// item itself carried the stage, rolls the item's own timestamp back so the
// derived status recedes accordingly. This is the inverse of AdvancePieces,
// used by uncommit and remove-from-box flows.
func (t *TrackingItem) RevertPieces(pieceKeys []string, target Stage) error {
	if !target.IsPieceStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%s is not a piece-level stage", target))
	}

	pieces, err := t.resolvePieces(pieceKeys)
	if err != nil {
		return err
	}

	for _, piece := range pieces {
		piece.clear(target)
	}

	delete(t.stageTimes, target)
	return nil
}

// RequestReturn freezes the item for return handling. The hold is rejected
// once the derived status reached Boxed; re-requesting a hold that is already
// active keeps the original stamp and succeeds.
func (t *TrackingItem) RequestReturn(now time.Time) error {
	if t.returnRequestAt != nil {
		return nil
	}
	if status := t.Status(); status.AtLeast(StageBoxed) {
		return &CannotHoldTrackingError{TrackingNumber: t.trackingNumber, Status: status}
	}
	t.returnRequestAt = &now
	return nil
}

// CancelReturn releases an active hold, unfreezing the pipeline.
func (t *TrackingItem) CancelReturn() {
	t.returnRequestAt = nil
}

// MarkDelivered stamps the final delivery time, set by a delivery commit.
// A held item rejects the stamp like any other pipeline move.
func (t *TrackingItem) MarkDelivered(now time.Time) error {
	if t.returnRequestAt != nil {
		return &ReturnRequestActiveError{TrackingNumber: t.trackingNumber}
	}
	t.deliveredAt = &now
	return nil
}

// RevertDelivered clears the delivery stamp during a delivery uncommit.
func (t *TrackingItem) RevertDelivered() {
	t.deliveredAt = nil
}

// AssignToPackBox places the item in a VN-side pack box. Held items and items
// already sitting in a different pack box are rejected.
func (t *TrackingItem) AssignToPackBox(packBoxID kernel.UUID) error {
	if err := packBoxID.Validate(); err != nil {
		return err
	}
	if t.returnRequestAt != nil {
		return &ReturnRequestActiveError{TrackingNumber: t.trackingNumber}
	}
	if t.packBoxID != nil && !t.packBoxID.IsEqual(packBoxID) {
		return fmt.Errorf("%w: %s", ErrTrackingItemAlreadyPacked, t.trackingNumber)
	}
	t.packBoxID = &packBoxID
	return nil
}

// RemoveFromPackBox clears the pack box reference.
func (t *TrackingItem) RemoveFromPackBox() {
	t.packBoxID = nil
}

// SplitPiece adds a new piece with the given label, splitting the parcel into
// one more independently movable unit.
func (t *TrackingItem) SplitPiece(information string) (*Piece, error) {
	piece, err := NewPiece(kernel.NewUUID(), information)
	if err != nil {
		return nil, err
	}
	t.pieces = append(t.pieces, piece)
	return piece, nil
}

// DeletePiece removes a piece that was never boxed. Boxed pieces and the last
// remaining piece cannot be deleted.
func (t *TrackingItem) DeletePiece(pieceID kernel.UUID) error {
	if len(t.pieces) == 1 {
		return ErrCannotDeleteLastPiece
	}

	for i, piece := range t.pieces {
		if !piece.id.IsEqual(pieceID) {
			continue
		}
		if piece.boxID != nil || piece.boxedAt != nil {
			return fmt.Errorf("%w: %s", ErrPieceAlreadyBoxed, piece.information)
		}
		t.pieces = append(t.pieces[:i], t.pieces[i+1:]...)
		return nil
	}
	return &PiecesNotFoundError{TrackingNumber: t.trackingNumber, Missing: []string{pieceID.String()}}
}

// PieceKeysInBox returns the keys (IDs) of the item's pieces sitting in the
// given box, used by container cascades to address exactly the affected
// pieces.
func (t *TrackingItem) PieceKeysInBox(boxID kernel.UUID) []string {
	var keys []string
	for _, piece := range t.pieces {
		if piece.boxID != nil && piece.boxID.IsEqual(boxID) {
			keys = append(keys, piece.id.String())
		}
	}
	return keys
}

// resolvePieces maps keys to pieces, collecting unmatched keys into a
// PiecesNotFoundError.
func (t *TrackingItem) resolvePieces(keys []string) ([]*Piece, error) {
	if len(keys) == 0 {
		return nil, errs.NewValueIsRequiredError("pieces")
	}

	resolved := make([]*Piece, 0, len(keys))
	var missing []string
	for _, key := range keys {
		found := false
		for _, piece := range t.pieces {
			if piece.Matches(key) {
				resolved = append(resolved, piece)
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return nil, &PiecesNotFoundError{TrackingNumber: t.trackingNumber, Missing: missing}
	}
	return resolved, nil
}

// allPiecesReached reports whether every piece of the item carries the stamp
// for the given piece-level stage.
func (t *TrackingItem) allPiecesReached(stage Stage) bool {
	for _, piece := range t.pieces {
		if piece.StageTime(stage) == nil {
			return false
		}
	}
	return true
}
