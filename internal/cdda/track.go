package cdda

import (
	"errors"
	"fmt"
)

// TrackPosition describes where a track sits relative to the rest of the
// disc.
type TrackPosition int

const (
	PositionInvalid TrackPosition = iota
	PositionFirst
	PositionMiddle
	PositionLast
	PositionOnly
)

var positionNames = [...]string{"Invalid", "First", "Middle", "Last", "Only"}

// NewTrackPosition classifies track num (1-based) of total.
func NewTrackPosition(num, total int) TrackPosition {
	switch {
	case num <= 0 || total < num:
		return PositionInvalid
	case num == 1 && total == 1:
		return PositionOnly
	case num == 1:
		return PositionFirst
	case num == total:
		return PositionLast
	default:
		return PositionMiddle
	}
}

// IsValid reports whether the position belongs to a real track.
func (p TrackPosition) IsValid() bool { return p != PositionInvalid }

// IsFirst reports whether the track starts the disc.
func (p TrackPosition) IsFirst() bool { return p == PositionFirst || p == PositionOnly }

// IsLast reports whether the track ends the disc.
func (p TrackPosition) IsLast() bool { return p == PositionLast || p == PositionOnly }

func (p TrackPosition) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return positionNames[PositionInvalid]
	}
	return positionNames[p]
}

// MarshalText encodes the position by name.
func (p TrackPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a position name.
func (p *TrackPosition) UnmarshalText(text []byte) error {
	for i, name := range positionNames {
		if string(text) == name {
			*p = TrackPosition(i)
			return nil
		}
	}
	return fmt.Errorf("unknown track position %q", text)
}

// Track is a single track on the disc.
//
// From and To describe the half-open sector range [From, To). For the last
// audio track To is the audio leadout.
type Track struct {
	Number   uint8         `json:"num"`
	Position TrackPosition `json:"pos"`
	From     uint32        `json:"from"`
	To       uint32        `json:"to"`
	IsData   bool          `json:"data,omitempty"`
}

// IsAudio returns true if this is an audio track
func (t Track) IsAudio() bool { return !t.IsData }

// IsHTOA reports whether the track is the hidden region before track 1.
func (t Track) IsHTOA() bool { return t.Number == 0 }

// Sectors returns the track length in sectors.
func (t Track) Sectors() uint32 { return t.To - t.From }

// LastSector returns the final sector belonging to the track.
func (t Track) LastSector() uint32 { return t.To - 1 }

// SectorRange returns the half-open sector range of the track.
func (t Track) SectorRange() (from, to uint32) { return t.From, t.To }

// SectorRangeNormalized is SectorRange without the mandatory 150-sector
// lead-in.
func (t Track) SectorRangeNormalized() (from, to uint32) {
	return t.From - MinLeadin, t.To - MinLeadin
}

// Duration returns the track length.
func (t Track) Duration() Duration { return Duration(t.Sectors()) }

// Bytes returns the size of the track's raw CD-DA data.
func (t Track) Bytes() uint64 { return uint64(t.Sectors()) * BytesPerSector }

// Samples returns the number of per-channel samples in the track.
func (t Track) Samples() uint64 { return t.Duration().Samples() }

// MSF returns the absolute start position in minute:second:frame form.
func (t Track) MSF() (uint32, uint8, uint8) { return MSF(t.From) }

// MSFNormalized returns the start position relative to the end of the
// mandatory lead-in, which is what players display.
func (t Track) MSFNormalized() (uint32, uint8, uint8) { return MSF(t.From - MinLeadin) }

// Validate checks a decoded track for a usable sector range.
func (t Track) Validate() error {
	if t.To <= t.From {
		return errors.New("track ends before it starts")
	}
	if t.From < MinLeadin {
		return ErrLeadinSize
	}
	return nil
}
