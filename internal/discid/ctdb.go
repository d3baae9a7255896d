package discid

import (
	"bytes"
	"crypto/sha1"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/binaryphile/cdtoc/internal/cdda"
)

const ctdbLookupURL = "http://db.cuetools.net/lookup2.php?version=3&ctdb=1&fuzzy=1&toc="

// NewCTDB computes the CUETools database id for toc.
//
// The hashed text is every audio start after the first, then the audio
// leadout, each as 8 uppercase hex digits relative to the first track and
// zero-padded to 100 fields.
func NewCTDB(toc cdda.Toc) Digest {
	sectors := toc.AudioSectors()
	if len(sectors) == 0 {
		return Digest{}
	}
	leadin := sectors[0]

	var sb strings.Builder
	sb.Grow(8 * (cdda.MaxTracks + 1))

	for _, v := range sectors[1:] {
		fmt.Fprintf(&sb, "%08X", v-leadin)
	}
	fmt.Fprintf(&sb, "%08X", toc.AudioLeadout()-leadin)

	for pad := cdda.MaxTracks - (len(sectors) - 1); pad > 0; pad-- {
		sb.WriteString("00000000")
	}

	return NewDigest(sha1.Sum([]byte(sb.String())), EncodingHex)
}

// CTDBLookupURL returns the CUETools database lookup URL for toc.
func CTDBLookupURL(toc cdda.Toc) string {
	var sb strings.Builder
	sb.WriteString(ctdbLookupURL)

	for _, v := range toc.AudioSectors() {
		sb.WriteString(strconv.FormatUint(uint64(v-cdda.MinLeadin), 10))
		sb.WriteByte(':')
	}
	if data, ok := toc.DataSectorNormalized(); ok {
		sb.WriteByte('-')
		sb.WriteString(strconv.FormatUint(uint64(data), 10))
		sb.WriteByte(':')
	}
	sb.WriteString(strconv.FormatUint(uint64(toc.LeadoutNormalized()), 10))

	return sb.String()
}

type ctdbEntry struct {
	Confidence string `xml:"confidence,attr"`
	TrackCRCs  string `xml:"trackcrcs,attr"`
}

// ParseCTDBChecksums reads a CUETools database lookup response and returns,
// for each audio track of toc, the known checksums mapped to their
// confidence.
//
// Entries missing either attribute are ignored. An entry whose CRC list does
// not cover every audio track is ErrChecksums.
func ParseCTDBChecksums(toc cdda.Toc, body []byte) ([]map[uint32]uint16, error) {
	n := toc.AudioLen()
	out := make([]map[uint32]uint16, n)
	for i := range out {
		out[i] = make(map[uint32]uint16)
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChecksums, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "entry" {
			continue
		}

		var entry ctdbEntry
		if err := dec.DecodeElement(&entry, &se); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChecksums, err)
		}
		if err := entry.apply(out); err != nil {
			return nil, err
		}
	}

	if !anyChecksums(out) {
		return nil, ErrNoChecksums
	}
	return out, nil
}

func (e ctdbEntry) apply(out []map[uint32]uint16) error {
	confidence, crcs := strings.TrimSpace(e.Confidence), strings.Fields(e.TrackCRCs)
	if confidence == "" || len(crcs) == 0 {
		return nil
	}

	c, err := strconv.ParseUint(confidence, 10, 16)
	if err != nil {
		return fmt.Errorf("%w: confidence %q", ErrChecksums, confidence)
	}
	if len(crcs) != len(out) {
		return fmt.Errorf("%w: expected %d track CRCs, found %d", ErrChecksums, len(out), len(crcs))
	}

	for i, s := range crcs {
		crc, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return fmt.Errorf("%w: track CRC %q", ErrChecksums, s)
		}
		if crc == 0 {
			continue
		}
		out[i][uint32(crc)] = addSaturating16(out[i][uint32(crc)], uint16(c))
	}
	return nil
}

func addSaturating16(a, b uint16) uint16 {
	if s := a + b; s >= a {
		return s
	}
	return 1<<16 - 1
}
