package cdda

import (
	"errors"
	"strconv"
	"strings"
)

// Parse decodes a CDTOC metadata value, the compact "+"-delimited hex form
// written by dBpoweramp and friends.
//
// The first field is the audio track count, followed by the start sector of
// every audio track, an optional data track sector (CD-Extra), and the
// leadout. Surrounding whitespace is ignored; hex digits may be either case.
func Parse(s string) (Toc, error) {
	s = strings.Trim(s, " \t\r\n\v\f")
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return !isCDTOCRune(r) }) != -1 {
		return Toc{}, ErrCDTOCChars
	}

	fields := strings.Split(s, "+")

	count, err := strconv.ParseUint(fields[0], 16, 8)
	if err != nil {
		return Toc{}, ErrTrackCount
	}
	if count == 0 {
		return Toc{}, ErrNoAudio
	}
	if count > MaxTracks {
		return Toc{}, ErrTrackCount
	}

	sectors := make([]uint32, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Toc{}, ErrSectorSize
			}
			return Toc{}, ErrCDTOCChars
		}
		sectors = append(sectors, uint32(v))
	}

	n := int(count)
	switch len(sectors) {
	case n + 1:
		return New(sectors[:n], 0, sectors[n])
	case n + 2:
		return New(sectors[:n], sectors[n], sectors[n+1])
	default:
		return Toc{}, &sectorCountError{expected: n, found: max(len(sectors)-1, 0)}
	}
}

func isCDTOCRune(r rune) bool {
	return r == '+' ||
		('0' <= r && r <= '9') ||
		('A' <= r && r <= 'F') ||
		('a' <= r && r <= 'f')
}

// String formats the Toc as a CDTOC metadata value.
func (t Toc) String() string {
	var sb strings.Builder
	sb.Grow(9 * (len(t.audio) + 3))

	sb.WriteString(strconv.FormatUint(uint64(len(t.audio)), 16))
	for _, v := range t.audio {
		writeField(&sb, v)
	}
	if t.HasData() {
		writeField(&sb, t.data)
	}
	writeField(&sb, t.leadout)

	return strings.ToUpper(sb.String())
}

func writeField(sb *strings.Builder, v uint32) {
	sb.WriteByte('+')
	sb.WriteString(strconv.FormatUint(uint64(v), 16))
}

// MarshalText encodes the Toc as its CDTOC string.
func (t Toc) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a CDTOC string.
func (t *Toc) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
