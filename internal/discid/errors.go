package discid

import "errors"

var (
	// ErrInvalidEncoding is returned when an identifier string has the wrong
	// length or contains characters outside its alphabet.
	ErrInvalidEncoding = errors.New("invalid identifier encoding")

	// ErrChecksums is returned when a checksum response does not belong to the
	// disc or cannot be read.
	ErrChecksums = errors.New("unable to parse checksums")

	// ErrNoChecksums is returned when a checksum response was readable but held
	// no usable checksums.
	ErrNoChecksums = errors.New("no checksums found")
)
