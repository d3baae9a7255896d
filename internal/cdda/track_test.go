package cdda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackPosition(t *testing.T) {
	tests := []struct {
		num, total int
		want       TrackPosition
	}{
		{0, 5, PositionInvalid},
		{6, 5, PositionInvalid},
		{1, 1, PositionOnly},
		{1, 5, PositionFirst},
		{3, 5, PositionMiddle},
		{5, 5, PositionLast},
	}

	for _, tt := range tests {
		if got := NewTrackPosition(tt.num, tt.total); got != tt.want {
			t.Errorf("NewTrackPosition(%d, %d) = %v, want %v", tt.num, tt.total, got, tt.want)
		}
	}

	assert.True(t, PositionOnly.IsFirst())
	assert.True(t, PositionOnly.IsLast())
	assert.False(t, PositionMiddle.IsFirst())
	assert.False(t, PositionInvalid.IsValid())
}

func TestTrack_Derived(t *testing.T) {
	track := Track{Number: 2, Position: PositionMiddle, From: 24047, To: 41202}

	assert.True(t, track.IsAudio())
	assert.False(t, track.IsHTOA())
	assert.Equal(t, uint32(17155), track.Sectors())
	assert.Equal(t, uint32(41201), track.LastSector())
	assert.Equal(t, Duration(17155), track.Duration())
	assert.Equal(t, uint64(17155*BytesPerSector), track.Bytes())
	assert.Equal(t, uint64(17155*SamplesPerSector), track.Samples())

	from, to := track.SectorRangeNormalized()
	assert.Equal(t, uint32(23897), from)
	assert.Equal(t, uint32(41052), to)

	m, s, f := track.MSF()
	assert.Equal(t, []uint32{5, 20, 47}, []uint32{m, uint32(s), uint32(f)})

	m, s, f = track.MSFNormalized()
	assert.Equal(t, []uint32{5, 18, 47}, []uint32{m, uint32(s), uint32(f)})

	assert.NoError(t, track.Validate())
	assert.Error(t, Track{From: 200, To: 200}.Validate())
	assert.ErrorIs(t, Track{From: 100, To: 200}.Validate(), ErrLeadinSize)
}

func TestTrack_JSON(t *testing.T) {
	track := Track{Number: 11, Position: PositionLast, From: 186_287, To: 225_041, IsData: true}

	raw, err := json.Marshal(track)
	require.NoError(t, err)
	assert.JSONEq(t, `{"num":11,"pos":"Last","from":186287,"to":225041,"data":true}`, string(raw))

	var back Track
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, track, back)

	var pos TrackPosition
	assert.Error(t, pos.UnmarshalText([]byte("Sideways")))
}
