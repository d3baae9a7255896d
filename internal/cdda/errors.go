package cdda

import (
	"errors"
	"fmt"
)

// ErrMalformedToc is the kind shared by every table of contents validation
// failure. Use errors.Is to test for it.
var ErrMalformedToc = errors.New("malformed table of contents")

// Causes of ErrMalformedToc
var (
	ErrCDTOCChars  = fmt.Errorf("%w: invalid character(s), expecting only 0-9, A-F and +", ErrMalformedToc)
	ErrLeadinSize  = fmt.Errorf("%w: leadin must be at least %d", ErrMalformedToc, MinLeadin)
	ErrNoAudio     = fmt.Errorf("%w: at least one audio track is required", ErrMalformedToc)
	ErrSectorCount = fmt.Errorf("%w: sector count does not match track count", ErrMalformedToc)
	ErrSectorOrder = fmt.Errorf("%w: sectors are incorrectly ordered or overlap", ErrMalformedToc)
	ErrSectorSize  = fmt.Errorf("%w: sectors may not exceed 32 bits", ErrMalformedToc)
	ErrTrackCount  = fmt.Errorf("%w: the number of audio tracks must be between 1 and %d", ErrMalformedToc, MaxTracks)
)

// ErrSampleCount is returned when a sample total does not divide evenly into
// CD sectors.
var ErrSampleCount = errors.New("invalid CDDA sample count")

// sectorCountError reports how many sectors a CDTOC declared versus what it
// carried.
type sectorCountError struct {
	expected int
	found    int
}

func (e *sectorCountError) Error() string {
	return fmt.Sprintf("%v: expected %d audio sectors, found %d", ErrMalformedToc, e.expected, e.found)
}

func (e *sectorCountError) Unwrap() error { return ErrSectorCount }
