package cdda

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Red Book audio constants
const (
	SectorsPerSecond = 75
	SamplesPerSector = 588  // Per channel: 44100 / 75
	BytesPerSector   = 2352 // 588 samples * 2 channels * 2 bytes

	// MinLeadin is the mandatory two-second lead-in every disc starts with.
	MinLeadin = 150

	// MaxTracks is the largest number of audio tracks a disc can carry.
	MaxTracks = 99

	// CDExtraGap is the gap between the end of the audio session and the start
	// of the data session on a CD-Extra disc.
	CDExtraGap = 11_400
)

// Duration is a span of disc time measured in sectors.
//
// Sectors are the natural resolution of a table of contents, so every
// conversion except ToStd and Float64 is lossless.
type Duration uint64

// DurationFromCDDASamples converts a per-channel sample count into a
// Duration. It fails if the count does not divide evenly into sectors.
func DurationFromCDDASamples(samples uint64) (Duration, error) {
	if samples%SamplesPerSector != 0 {
		return 0, ErrSampleCount
	}
	return Duration(samples / SamplesPerSector), nil
}

// DurationFromSamples converts a sample count at an arbitrary rate into a
// Duration, truncating partial sectors.
func DurationFromSamples(sampleRate uint32, samples uint64) Duration {
	if sampleRate == 0 || samples == 0 {
		return 0
	}

	rate := uint64(sampleRate)
	s, rem := samples/rate, samples%rate
	return Duration(s*SectorsPerSecond + rem*SectorsPerSecond/rate)
}

// Sectors returns the duration as a sector count.
func (d Duration) Sectors() uint64 { return uint64(d) }

// Samples returns the number of per-channel samples covered.
func (d Duration) Samples() uint64 { return uint64(d) * SamplesPerSector }

// Seconds returns the whole seconds, discarding leftover frames.
func (d Duration) Seconds() uint64 { return uint64(d) / SectorsPerSecond }

// SecondsFrames splits the duration into whole seconds and leftover frames.
func (d Duration) SecondsFrames() (uint64, uint8) {
	return uint64(d) / SectorsPerSecond, uint8(uint64(d) % SectorsPerSecond)
}

// DHMSF splits the duration into days, hours, minutes, seconds and frames.
func (d Duration) DHMSF() (days uint64, hours, minutes, seconds, frames uint8) {
	s, f := d.SecondsFrames()
	days = s / 86_400
	s -= days * 86_400
	hours = uint8(s / 3600)
	minutes = uint8(s % 3600 / 60)
	seconds = uint8(s % 60)
	return days, hours, minutes, seconds, f
}

// Float64 returns the duration in seconds.
//
// This is lossy: a frame is 1/75 of a second, which has no exact binary
// representation.
func (d Duration) Float64() float64 {
	s, f := d.SecondsFrames()
	return float64(s) + float64(f)/SectorsPerSecond
}

// ToStd converts to a time.Duration.
//
// This is lossy: sub-nanosecond remainders are truncated. There are
// 1_000_000_000 nanoseconds per 75 sectors, reduced here to 40_000_000:3.
func (d Duration) ToStd() time.Duration {
	n := uint64(d)
	if n <= (1<<63-1)/40_000_000 {
		return time.Duration(n * 40_000_000 / 3)
	}

	s, f := d.SecondsFrames()
	return time.Duration(s)*time.Second + time.Duration(uint64(f)*40_000_000/3)
}

// String formats the duration as hh:mm:ss+ff, with a leading day count when
// needed.
func (d Duration) String() string {
	days, h, m, s, f := d.DHMSF()
	if days == 0 {
		return fmt.Sprintf("%02d:%02d:%02d+%02d", h, m, s, f)
	}
	return fmt.Sprintf("%dd %02d:%02d:%02d+%02d", days, h, m, s, f)
}

// Pretty formats the duration as an English list, e.g.
// "1 hour, 2 minutes, and 3 frames".
func (d Duration) Pretty() string {
	p := message.NewPrinter(language.English)
	days, h, m, s, f := d.DHMSF()

	var parts []string
	if days != 0 {
		parts = append(parts, inflect(p, days, "day", "days"))
	}
	for _, unit := range []struct {
		n              uint8
		single, plural string
	}{
		{h, "hour", "hours"},
		{m, "minute", "minutes"},
		{s, "second", "seconds"},
		{f, "frame", "frames"},
	} {
		if unit.n != 0 {
			parts = append(parts, inflect(p, uint64(unit.n), unit.single, unit.plural))
		}
	}

	switch len(parts) {
	case 0:
		return "0 seconds"
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

func inflect(p *message.Printer, n uint64, single, plural string) string {
	if n == 1 {
		return p.Sprintf("%d %s", n, single)
	}
	return p.Sprintf("%d %s", n, plural)
}

// MSF converts a sector count to minute:second:frame form. Minutes are not
// folded into hours.
func MSF(sectors uint32) (m uint32, s, f uint8) {
	secs := sectors / SectorsPerSecond
	return secs / 60, uint8(secs % 60), uint8(sectors % SectorsPerSecond)
}
