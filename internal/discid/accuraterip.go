package discid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/samber/lo"
)

const (
	accurateRipLen     = 13
	accurateRipStrLen  = 30
	accurateRipBaseURL = "http://www.accuraterip.com/accuraterip/"
	trackChecksumLen   = 9
)

// AccurateRip is the disc identifier used by the AccurateRip checksum
// database: the audio track count, two running sums over the track offsets,
// and the CDDB id, with the 32-bit values stored little-endian.
type AccurateRip [accurateRipLen]byte

// NewAccurateRip computes the AccurateRip id for toc.
//
// Offsets are taken relative to the mandatory lead-in. The first sum adds
// every audio offset plus the disc leadout; the second weights each by its
// 1-based position, counting a zero offset as one. Both wrap at 32 bits.
func NewAccurateRip(toc cdda.Toc) AccurateRip {
	var b, c uint32

	idx := uint32(1)
	for _, v := range toc.AudioSectors() {
		off := v - cdda.MinLeadin
		b += off
		c += max(off, 1) * idx
		idx++
	}

	leadout := toc.LeadoutNormalized()
	b += leadout
	c += max(leadout, 1) * idx

	var id AccurateRip
	id[0] = uint8(toc.AudioLen())
	binary.LittleEndian.PutUint32(id[1:5], b)
	binary.LittleEndian.PutUint32(id[5:9], c)
	binary.LittleEndian.PutUint32(id[9:13], uint32(NewCDDB(toc)))
	return id
}

// DecodeAccurateRip parses the NNN-xxxxxxxx-xxxxxxxx-xxxxxxxx form.
func DecodeAccurateRip(s string) (AccurateRip, error) {
	if len(s) != accurateRipStrLen || s[3] != '-' || s[12] != '-' || s[21] != '-' {
		return AccurateRip{}, fmt.Errorf("%w: AccurateRip id %q", ErrInvalidEncoding, s)
	}

	n, err := strconv.ParseUint(s[:3], 10, 8)
	if err != nil {
		return AccurateRip{}, fmt.Errorf("%w: AccurateRip track count %q", ErrInvalidEncoding, s[:3])
	}

	var id AccurateRip
	id[0] = uint8(n)
	for i, part := range []string{s[4:12], s[13:21], s[22:30]} {
		v, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return AccurateRip{}, fmt.Errorf("%w: AccurateRip field %q", ErrInvalidEncoding, part)
		}
		binary.LittleEndian.PutUint32(id[1+4*i:], uint32(v))
	}
	return id, nil
}

// AudioLen returns the number of audio tracks.
func (a AccurateRip) AudioLen() uint8 { return a[0] }

// CDDB returns the CDDB id embedded in the identifier.
func (a AccurateRip) CDDB() CDDB {
	return CDDB(binary.LittleEndian.Uint32(a[9:13]))
}

func (a AccurateRip) String() string {
	return fmt.Sprintf("%03d-%08x-%08x-%08x",
		a[0],
		binary.LittleEndian.Uint32(a[1:5]),
		binary.LittleEndian.Uint32(a[5:9]),
		binary.LittleEndian.Uint32(a[9:13]),
	)
}

// ChecksumURL returns the location of the dBAR file for the disc. The three
// directory levels are the last three hex digits of the first sum, in
// reverse.
func (a AccurateRip) ChecksumURL() string {
	id := a.String()
	return accurateRipBaseURL + id[11:12] + "/" + id[10:11] + "/" + id[9:10] + "/dBAR-" + id + ".bin"
}

// ParseChecksums reads a dBAR file body and returns, for each audio track,
// the known checksums mapped to their confidence.
//
// A dBAR file is a series of submissions, each the 13-byte disc id followed
// by a [confidence, crc LE] entry per track. Zero CRCs are placeholders and
// skipped; confidences for a CRC seen more than once are summed, saturating
// at 255.
func (a AccurateRip) ParseChecksums(bin []byte) ([]map[uint32]uint8, error) {
	n := int(a.AudioLen())
	chunkSize := accurateRipLen + trackChecksumLen*n

	out := make([]map[uint32]uint8, n)
	for i := range out {
		out[i] = make(map[uint32]uint8)
	}

	for len(bin) >= chunkSize {
		chunk := bin[:chunkSize]
		bin = bin[chunkSize:]

		if !bytes.HasPrefix(chunk, a[:]) {
			return nil, fmt.Errorf("%w: submission is for a different disc", ErrChecksums)
		}
		chunk = chunk[accurateRipLen:]

		for i := 0; i < n; i++ {
			entry := chunk[i*trackChecksumLen : (i+1)*trackChecksumLen]
			crc := binary.LittleEndian.Uint32(entry[1:5])
			if crc == 0 {
				continue
			}
			out[i][crc] = addSaturating8(out[i][crc], entry[0])
		}
	}

	if !anyChecksums(out) {
		return nil, ErrNoChecksums
	}
	return out, nil
}

// MarshalText encodes the id in its string form.
func (a AccurateRip) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the string form.
func (a *AccurateRip) UnmarshalText(text []byte) error {
	id, err := DecodeAccurateRip(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

func addSaturating8(a, b uint8) uint8 {
	if s := a + b; s >= a {
		return s
	}
	return 255
}

func anyChecksums[V any](maps []map[uint32]V) bool {
	return lo.SomeBy(maps, func(m map[uint32]V) bool { return len(m) > 0 })
}
