package kernel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.Len(t, id.String(), 36)
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("valid_string", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("invalid_string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("nil_uuid_is_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("wrong_length_is_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}
