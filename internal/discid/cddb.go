package discid

import (
	"fmt"
	"strconv"

	"github.com/binaryphile/cdtoc/internal/cdda"
)

const cddbStrLen = 8

// CDDB is the 32-bit freedb disc id.
//
// The most significant byte is a checksum of the track start times, the
// middle two bytes are the disc length in seconds, and the low byte is the
// track count.
type CDDB uint32

// NewCDDB computes the freedb id for toc. A CD-Extra data track counts as a
// track and contributes to the checksum.
func NewCDDB(toc cdda.Toc) CDDB {
	var sum uint32
	count := uint32(toc.AudioLen())

	for _, v := range toc.AudioSectors() {
		sum += digitSum(v / cdda.SectorsPerSecond)
	}
	if data, ok := toc.DataSector(); ok {
		sum += digitSum(data / cdda.SectorsPerSecond)
		count++
	}

	length := uint16(toc.Leadout()/cdda.SectorsPerSecond - toc.Leadin()/cdda.SectorsPerSecond)

	return CDDB(sum%255)<<24 | CDDB(length)<<8 | CDDB(uint8(count))
}

// DecodeCDDB parses the 8 hex digit form String produces.
func DecodeCDDB(s string) (CDDB, error) {
	if len(s) != cddbStrLen {
		return 0, fmt.Errorf("%w: CDDB id %q", ErrInvalidEncoding, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: CDDB id %q", ErrInvalidEncoding, s)
	}
	return CDDB(v), nil
}

func (c CDDB) String() string { return fmt.Sprintf("%08x", uint32(c)) }

// MarshalText encodes the id as 8 hex digits.
func (c CDDB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a hex id.
func (c *CDDB) UnmarshalText(text []byte) error {
	id, err := DecodeCDDB(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}

func digitSum(n uint32) uint32 {
	var sum uint32
	for ; n > 0; n /= 10 {
		sum += n % 10
	}
	return sum
}
