package cdda

import "slices"

// Kind distinguishes audio-only discs from mixed-mode discs.
type Kind int

const (
	KindAudio   Kind = iota // Audio only
	KindCDExtra             // Audio followed by a data session
)

func (k Kind) String() string {
	if k == KindCDExtra {
		return "CD-Extra"
	}
	return "audio-only"
}

// HasData reports whether the kind carries a data track.
func (k Kind) HasData() bool { return k == KindCDExtra }

// Toc is a validated CD table of contents.
//
// A Toc is only ever obtained through a constructor that has checked every
// invariant, and no method changes it afterwards, so values can be shared
// between goroutines freely. Methods that "change" a Toc return a new one.
type Toc struct {
	kind    Kind
	audio   []uint32 // start sector of each audio track
	data    uint32   // start sector of the data track, CD-Extra only
	leadout uint32
}

// New builds a Toc from the start sector of each audio track, the start
// sector of the trailing data track (zero if there is none), and the leadout.
//
// The audio track count must be within 1..=99, the first track may not start
// before sector 150, and every sector must come strictly after the previous
// one, with the data track (if any) falling between the last audio track and
// the leadout, more than CDExtraGap sectors after the last audio start.
func New(audio []uint32, data, leadout uint32) (Toc, error) {
	n := len(audio)
	if n == 0 {
		return Toc{}, ErrNoAudio
	}
	if n > MaxTracks {
		return Toc{}, ErrTrackCount
	}
	if audio[0] < MinLeadin {
		return Toc{}, ErrLeadinSize
	}
	for i := 1; i < n; i++ {
		if audio[i] <= audio[i-1] {
			return Toc{}, ErrSectorOrder
		}
	}
	if leadout <= audio[n-1] {
		return Toc{}, ErrSectorOrder
	}

	kind := KindAudio
	if data != 0 {
		// The audio session ends CDExtraGap sectors before the data track,
		// and that end must still come after the last audio start.
		if uint64(data) <= uint64(audio[n-1])+CDExtraGap || leadout <= data {
			return Toc{}, ErrSectorOrder
		}
		kind = KindCDExtra
	}

	return Toc{
		kind:    kind,
		audio:   slices.Clone(audio),
		data:    data,
		leadout: leadout,
	}, nil
}

// FromDurations builds an audio-only Toc from consecutive track lengths,
// the first starting at leadin. Like every Toc, leadin may not be below 150.
func FromDurations(durations []Duration, leadin uint32) (Toc, error) {
	if len(durations) == 0 {
		return Toc{}, ErrNoAudio
	}

	audio := make([]uint32, 0, len(durations))
	last := uint64(leadin)
	for _, d := range durations {
		audio = append(audio, uint32(last))
		last += d.Sectors()
		if last > 1<<32-1 {
			return Toc{}, ErrSectorSize
		}
	}

	return New(audio, 0, uint32(last))
}

// WithAudioLeadin returns a copy of the Toc moved so the first audio track
// starts at leadin. The data track and leadout move by the same amount.
func (t Toc) WithAudioLeadin(leadin uint32) (Toc, error) {
	if leadin < MinLeadin {
		return Toc{}, ErrLeadinSize
	}

	shift := func(v uint32) (uint32, bool) {
		n := int64(v) + int64(leadin) - int64(t.AudioLeadin())
		return uint32(n), n >= 0 && n <= 1<<32-1
	}

	audio := make([]uint32, len(t.audio))
	for i, v := range t.audio {
		var ok bool
		if audio[i], ok = shift(v); !ok {
			return Toc{}, ErrSectorSize
		}
	}
	leadout, ok := shift(t.leadout)
	if !ok {
		return Toc{}, ErrSectorSize
	}
	var data uint32
	if t.HasData() {
		if data, ok = shift(t.data); !ok {
			return Toc{}, ErrSectorSize
		}
	}

	return New(audio, data, leadout)
}

// WithKind returns a copy of the Toc reinterpreted as kind.
//
// Converting an audio-only Toc to CD-Extra turns its last audio track into
// the data track; converting back does the reverse. This is handy when a
// CDTOC tag counted the data session as an audio track, or vice versa.
func (t Toc) WithKind(kind Kind) (Toc, error) {
	switch {
	case t.kind == kind:
		return t, nil
	case kind == KindCDExtra:
		n := len(t.audio)
		if n == 1 {
			return Toc{}, ErrNoAudio
		}
		return New(t.audio[:n-1], t.audio[n-1], t.leadout)
	default:
		return New(append(slices.Clone(t.audio), t.data), 0, t.leadout)
	}
}

// Kind returns the disc format.
func (t Toc) Kind() Kind { return t.kind }

// HasData reports whether the disc has a trailing data track.
func (t Toc) HasData() bool { return t.kind.HasData() }

// AudioLen returns the number of audio tracks.
func (t Toc) AudioLen() int { return len(t.audio) }

// AudioSectors returns the start sector of each audio track.
func (t Toc) AudioSectors() []uint32 { return slices.Clone(t.audio) }

// AudioLeadin returns the start of the first audio track.
func (t Toc) AudioLeadin() uint32 {
	if len(t.audio) == 0 {
		return MinLeadin
	}
	return t.audio[0]
}

// AudioLeadinNormalized is AudioLeadin without the mandatory lead-in.
func (t Toc) AudioLeadinNormalized() uint32 { return t.AudioLeadin() - MinLeadin }

// AudioLeadout returns the end of the audio session. It equals Leadout
// except on CD-Extra discs, where the audio ends a fixed gap before the data
// track.
func (t Toc) AudioLeadout() uint32 {
	if t.kind == KindCDExtra {
		if t.data < CDExtraGap {
			return 0
		}
		return t.data - CDExtraGap
	}
	return t.leadout
}

// AudioLeadoutNormalized is AudioLeadout without the mandatory lead-in.
func (t Toc) AudioLeadoutNormalized() uint32 { return t.AudioLeadout() - MinLeadin }

// DataSector returns the start of the data track, if any.
func (t Toc) DataSector() (uint32, bool) {
	if t.HasData() {
		return t.data, true
	}
	return 0, false
}

// DataSectorNormalized is DataSector without the mandatory lead-in.
func (t Toc) DataSectorNormalized() (uint32, bool) {
	if t.HasData() {
		return t.data - MinLeadin, true
	}
	return 0, false
}

// Leadin returns the start of the first track. With data tracks only allowed
// at the end it always equals AudioLeadin.
func (t Toc) Leadin() uint32 { return t.AudioLeadin() }

// LeadinNormalized is Leadin without the mandatory lead-in.
func (t Toc) LeadinNormalized() uint32 { return t.Leadin() - MinLeadin }

// Leadout returns the disc leadout.
func (t Toc) Leadout() uint32 { return t.leadout }

// LeadoutNormalized is Leadout without the mandatory lead-in.
func (t Toc) LeadoutNormalized() uint32 { return t.leadout - MinLeadin }

// Duration returns the combined length of the audio tracks.
func (t Toc) Duration() Duration {
	return Duration(t.AudioLeadout() - t.AudioLeadin())
}

// AudioTrack returns audio track num (1-based).
func (t Toc) AudioTrack(num int) (Track, bool) {
	n := len(t.audio)
	if num < 1 || num > n {
		return Track{}, false
	}

	to := t.AudioLeadout()
	if num < n {
		to = t.audio[num]
	}
	return Track{
		Number:   uint8(num),
		Position: NewTrackPosition(num, n),
		From:     t.audio[num-1],
		To:       to,
	}, true
}

// AudioTracks returns every audio track in order.
func (t Toc) AudioTracks() []Track {
	tracks := make([]Track, 0, len(t.audio))
	for i := range t.audio {
		track, _ := t.AudioTrack(i + 1)
		tracks = append(tracks, track)
	}
	return tracks
}

// Tracks returns every track in order, including the trailing data track.
// Positions are relative to the full list.
func (t Toc) Tracks() []Track {
	tracks := t.AudioTracks()
	if !t.HasData() {
		return tracks
	}

	total := len(tracks) + 1
	for i := range tracks {
		tracks[i].Position = NewTrackPosition(i+1, total)
	}
	return append(tracks, Track{
		Number:   uint8(total),
		Position: NewTrackPosition(total, total),
		From:     t.data,
		To:       t.leadout,
		IsData:   true,
	})
}

// HTOA returns the hidden pre-gap between the mandatory lead-in and a first
// track that starts late, if there is one. Such regions are usually a bit of
// silence but occasionally hold a bonus song.
func (t Toc) HTOA() (Track, bool) {
	leadin := t.AudioLeadin()
	if leadin == MinLeadin {
		return Track{}, false
	}
	return Track{
		Number:   0,
		Position: PositionInvalid,
		From:     MinLeadin,
		To:       leadin,
	}, true
}

// Equal reports whether two Tocs describe the same disc.
func (t Toc) Equal(other Toc) bool {
	return t.kind == other.kind &&
		t.data == other.data &&
		t.leadout == other.leadout &&
		slices.Equal(t.audio, other.audio)
}
