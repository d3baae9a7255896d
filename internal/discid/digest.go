package discid

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// DigestSize is the length of a SHA-1 digest.
const DigestSize = 20

// Encoding selects the textual form of a Digest.
type Encoding int

const (
	EncodingHex         Encoding = iota // 40 lowercase hex digits
	EncodingBase64                      // 28 chars, standard alphabet
	EncodingMusicBrainz                 // 28 chars, with "._-" in place of "+/="
)

// musicBrainzEncoding is standard base64 with the three URL-hostile
// characters swapped out.
var musicBrainzEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789._",
).WithPadding('-').Strict()

var stdEncoding = base64.StdEncoding.Strict()

func (e Encoding) String() string {
	switch e {
	case EncodingHex:
		return "hex"
	case EncodingBase64:
		return "base64"
	case EncodingMusicBrainz:
		return "musicbrainz"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Len returns the length of a digest string in this encoding.
func (e Encoding) Len() int {
	if e == EncodingHex {
		return hex.EncodedLen(DigestSize)
	}
	return base64.StdEncoding.EncodedLen(DigestSize)
}

// Digest is a 20-byte hash paired with the encoding it is displayed in.
//
// Comparison is always on the bytes; two digests holding the same hash are
// equal regardless of how they print.
type Digest struct {
	sum [DigestSize]byte
	enc Encoding
}

// NewDigest wraps a raw hash.
func NewDigest(sum [DigestSize]byte, enc Encoding) Digest {
	return Digest{sum: sum, enc: enc}
}

// DecodeDigest parses s in the given encoding.
func DecodeDigest(s string, enc Encoding) (Digest, error) {
	if len(s) != enc.Len() {
		return Digest{}, fmt.Errorf("%w: %s digest must be %d characters, got %d", ErrInvalidEncoding, enc, enc.Len(), len(s))
	}

	var (
		raw []byte
		err error
	)
	switch enc {
	case EncodingHex:
		raw, err = hex.DecodeString(s)
	case EncodingBase64:
		raw, err = stdEncoding.DecodeString(s)
	case EncodingMusicBrainz:
		raw, err = musicBrainzEncoding.DecodeString(s)
	default:
		return Digest{}, fmt.Errorf("%w: unknown encoding %s", ErrInvalidEncoding, enc)
	}
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(raw) != DigestSize {
		return Digest{}, fmt.Errorf("%w: decoded %d bytes", ErrInvalidEncoding, len(raw))
	}

	d := Digest{enc: enc}
	copy(d.sum[:], raw)
	return d, nil
}

// Sum returns the raw hash.
func (d Digest) Sum() [DigestSize]byte { return d.sum }

// Encoding returns the encoding String uses.
func (d Digest) Encoding() Encoding { return d.enc }

// WithEncoding returns the same hash displayed in enc.
func (d Digest) WithEncoding(enc Encoding) Digest {
	d.enc = enc
	return d
}

// Encode formats the hash in enc.
func (d Digest) Encode(enc Encoding) string {
	switch enc {
	case EncodingBase64:
		return stdEncoding.EncodeToString(d.sum[:])
	case EncodingMusicBrainz:
		return musicBrainzEncoding.EncodeToString(d.sum[:])
	default:
		return hex.EncodeToString(d.sum[:])
	}
}

func (d Digest) String() string { return d.Encode(d.enc) }

// Compare orders digests by their bytes.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d.sum[:], other.sum[:])
}

// Equal reports whether both digests hold the same hash.
func (d Digest) Equal(other Digest) bool { return d.sum == other.sum }

// MarshalText encodes the digest in its own encoding.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a digest. A 40-character value is read as hex; a
// 28-character value is read in the receiver's base64 flavor, defaulting to
// the MusicBrainz alphabet.
func (d *Digest) UnmarshalText(text []byte) error {
	enc := d.enc
	if len(text) != enc.Len() {
		switch {
		case len(text) == EncodingHex.Len():
			enc = EncodingHex
		case enc == EncodingHex:
			enc = EncodingMusicBrainz
		}
	}

	parsed, err := DecodeDigest(string(text), enc)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
