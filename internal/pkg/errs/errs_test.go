package errs_test

import (
	"errors"
	"testing"

	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("trackingNumber", "US123456")

		assert.Equal(t, "trackingNumber", err.ParamName)
		assert.Equal(t, "US123456", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: US123456", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("trackingNumber", "US123456", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: trackingNumber, ID is: US123456 (cause: database connection failed)",
			err.Error())
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("shipmentCode", "SH0001")

		assert.Equal(t, "shipmentCode", err.ParamName)
		assert.Equal(t, "object already exists: SH0001", err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicated key")
		err := errs.NewObjectAlreadyExistsErrorWithCause("shipmentCode", "SH0001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.True(t, errors.Is(err, errs.ErrObjectAlreadyExists))
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("trackingNumber")

	assert.Equal(t, "trackingNumber", err.ParamName)
	assert.Equal(t, "value is required: trackingNumber", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("stage")

		assert.Equal(t, "stage", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: stage", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown stage name")
		err := errs.NewValueIsInvalidErrorWithCause("stage", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: stage (cause: unknown stage name)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("pieceCount", 0, 1, 100)

	assert.Equal(t, "pieceCount", err.ParamName)
	assert.Equal(t, 0, err.Value)
	assert.Equal(t, "value is invalid: 0 is pieceCount, min value is 1, max value is 100", err.Error())
	assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
}
