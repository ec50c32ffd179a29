package outbox

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrFailedJobIsNotConstructed is returned when using an improperly initialized FailedJob.
var ErrFailedJobIsNotConstructed = errors.New("FailedJob must be created via NewFailedJob or RestoreFailedJob")

// FailedJob is a dead-lettered side effect kept for operator inspection
// instead of being retried forever. The tracking number names the parcel the
// side effect belonged to, so an operator can trace a lost notification.
type FailedJob struct {
	id             kernel.UUID
	kind           string
	trackingNumber string
	payload        []byte
	errText        string
	failedAt       time.Time

	guard kernel.ConstructorGuard
}

// NewFailedJob dead-letters a side effect with the error that killed it.
func NewFailedJob(id kernel.UUID, kind, trackingNumber string, payload []byte, errText string, now time.Time) (*FailedJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}

	return &FailedJob{
		id:             id,
		kind:           kind,
		trackingNumber: trackingNumber,
		payload:        payload,
		errText:        errText,
		failedAt:       now,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// RestoreFailedJob reconstructs a dead-lettered job from persistent storage.
func RestoreFailedJob(id kernel.UUID, kind, trackingNumber string, payload []byte, errText string, failedAt time.Time) (*FailedJob, error) {
	return NewFailedJob(id, kind, trackingNumber, payload, errText, failedAt)
}

// Validate ensures the job was created through a constructor.
func (j *FailedJob) Validate() error {
	if j == nil {
		return ErrFailedJobIsNotConstructed
	}
	return j.guard.Validate(ErrFailedJobIsNotConstructed)
}

// ID returns the job identity.
func (j *FailedJob) ID() kernel.UUID { return j.id }

// Kind names the side effect that failed, e.g. "notification".
func (j *FailedJob) Kind() string { return j.kind }

// TrackingNumber returns the parcel the side effect belonged to.
func (j *FailedJob) TrackingNumber() string { return j.trackingNumber }

// Payload returns the serialized job input.
func (j *FailedJob) Payload() []byte { return j.payload }

// ErrorText returns the message of the error that dead-lettered the job.
func (j *FailedJob) ErrorText() string { return j.errText }

// FailedAt returns when the job was dead-lettered.
func (j *FailedJob) FailedAt() time.Time { return j.failedAt }
