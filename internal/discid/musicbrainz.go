package discid

import (
	"crypto/sha1"
	"fmt"
	"strconv"
	"strings"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/samber/lo"
)

const musicBrainzLookupURL = "https://musicbrainz.org/ws/2/discid/"

// NewMusicBrainz computes the MusicBrainz disc id for toc.
//
// The hashed text is the first and last audio track numbers as 2 uppercase
// hex digits, then the audio leadout and 99 track offsets as 8 digits each,
// zero for unused slots. Only the audio session is hashed, so a CD-Extra disc
// uses its audio leadout in place of the disc leadout.
func NewMusicBrainz(toc cdda.Toc) Digest {
	var sb strings.Builder
	sb.Grow(4 + 8*(cdda.MaxTracks+1))

	sectors := toc.AudioSectors()
	fmt.Fprintf(&sb, "%02X%02X", 1, len(sectors))
	fmt.Fprintf(&sb, "%08X", toc.AudioLeadout())

	for i := 0; i < cdda.MaxTracks; i++ {
		var offset uint32
		if i < len(sectors) {
			offset = sectors[i]
		}
		fmt.Fprintf(&sb, "%08X", offset)
	}

	return NewDigest(sha1.Sum([]byte(sb.String())), EncodingMusicBrainz)
}

// MusicBrainzLookupURL returns the web service URL for the disc. The toc
// parameter lets MusicBrainz fall back to a fuzzy match when the id itself
// is unknown.
func MusicBrainzLookupURL(toc cdda.Toc) string {
	sectors := toc.AudioSectors()

	parts := append(
		[]string{"1", strconv.Itoa(len(sectors)), strconv.FormatUint(uint64(toc.AudioLeadout()), 10)},
		lo.Map(sectors, func(v uint32, _ int) string { return strconv.FormatUint(uint64(v), 10) })...,
	)

	return musicBrainzLookupURL + NewMusicBrainz(toc).String() + "?toc=" + strings.Join(parts, "+")
}
