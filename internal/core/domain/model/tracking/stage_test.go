package tracking_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Power_Ordering(t *testing.T) {
	ordered := []tracking.Stage{
		tracking.StageNew,
		tracking.StageRegistered,
		tracking.StageReceivedAtUS,
		tracking.StageRepacking,
		tracking.StageRepacked,
		tracking.StageBoxed,
		tracking.StageFlyingBack,
		tracking.StageReceivedAtVN,
	}

	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i-1].Before(ordered[i]),
			"%s should rank below %s", ordered[i-1], ordered[i])
		assert.True(t, ordered[i].AtLeast(ordered[i-1]))
	}
}

func TestStage_Power_Unique(t *testing.T) {
	seen := make(map[int]tracking.Stage)
	for s := tracking.StageNew; s <= tracking.StageReceivedAtVN; s++ {
		power := s.Power()
		prev, dup := seen[power]
		require.False(t, dup, "stages %s and %s share power %d", prev, s, power)
		seen[power] = s
	}
}

func TestStage_ReceivedAtVN_KeepsLegacyPower(t *testing.T) {
	// Persisted rank values must stay stable across the retired VN stages.
	assert.Equal(t, 8, tracking.StageReceivedAtVN.Power())
	assert.Equal(t, 6, tracking.StageFlyingBack.Power())
}

func TestStage_String_RoundTrip(t *testing.T) {
	for s := tracking.StageNew; s <= tracking.StageReceivedAtVN; s++ {
		parsed, err := tracking.StageFromString(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestStageFromString_Unknown(t *testing.T) {
	_, err := tracking.StageFromString("teleported")

	require.Error(t, err)
}

func TestStage_Validate(t *testing.T) {
	require.NoError(t, tracking.StageBoxed.Validate())
	require.Error(t, tracking.Stage(42).Validate())
}

func TestStage_IsPieceStage(t *testing.T) {
	assert.True(t, tracking.StageBoxed.IsPieceStage())
	assert.True(t, tracking.StageFlyingBack.IsPieceStage())
	assert.True(t, tracking.StageReceivedAtVN.IsPieceStage())
	assert.False(t, tracking.StageRepacked.IsPieceStage())
	assert.False(t, tracking.StageNew.IsPieceStage())
}
