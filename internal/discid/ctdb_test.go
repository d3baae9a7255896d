package discid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCTDB(t *testing.T) {
	for _, ref := range references {
		toc := mustParse(t, ref.cdtoc)
		id := NewCTDB(toc)

		if got := id.Encode(EncodingMusicBrainz); got != ref.ctdb {
			t.Errorf("NewCTDB(%s) = %q, want %q", ref.cdtoc, got, ref.ctdb)
		}
		assert.Equal(t, EncodingHex, id.Encoding())
		assert.Len(t, id.String(), 40)

		decoded, err := DecodeDigest(ref.ctdb, EncodingMusicBrainz)
		require.NoError(t, err)
		assert.True(t, id.Equal(decoded))

		if got := CTDBLookupURL(toc); got != ref.ctdbURL {
			t.Errorf("CTDBLookupURL(%s) = %q, want %q", ref.cdtoc, got, ref.ctdbURL)
		}
	}
}

const ctdbResponse = `<?xml version="1.0" encoding="utf-8"?>
<ctdb xmlns="http://db.cuetools.net/ns/mmd-1.0#" xmlns:ext="http://db.cuetools.net/ns/ext-1.0#">
  <entry confidence="65000" crc32="5c0c3bb4" id="VukMWWItblELRM.CEFpXxw0FlME-" npar="8" stride="5880" toc="0:11413:25024:45713:55220" trackcrcs="a1b2c3d4 00000000 deadbeef 01020304" />
  <entry confidence="1000" trackcrcs="a1b2c3d4 11111111 deadbeef 01020304" />
  <entry trackcrcs="ffffffff ffffffff ffffffff ffffffff" />
  <musicbrainz artist="Somebody" />
</ctdb>
`

func TestParseCTDBChecksums(t *testing.T) {
	toc := mustParse(t, "4+96+2D2B+6256+B327+D84A")

	got, err := ParseCTDBChecksums(toc, []byte(ctdbResponse))
	require.NoError(t, err)

	want := []map[uint32]uint16{
		{0xa1b2c3d4: 65535},
		{0x11111111: 1000},
		{0xdeadbeef: 65535},
		{0x01020304: 65535},
	}
	assert.Equal(t, want, got)
}

func TestParseCTDBChecksums_Errors(t *testing.T) {
	toc := mustParse(t, "4+96+2D2B+6256+B327+D84A")

	tests := []struct {
		name string
		xml  string
		want error
	}{
		{"short crc list", `<ctdb><entry confidence="1" trackcrcs="1 2 3" /></ctdb>`, ErrChecksums},
		{"bad crc", `<ctdb><entry confidence="1" trackcrcs="1 2 3 zz" /></ctdb>`, ErrChecksums},
		{"bad confidence", `<ctdb><entry confidence="many" trackcrcs="1 2 3 4" /></ctdb>`, ErrChecksums},
		{"malformed", `<ctdb><entry confidence="1"`, ErrChecksums},
		{"no entries", `<ctdb></ctdb>`, ErrNoChecksums},
		{"only zeros", `<ctdb><entry confidence="9" trackcrcs="0 0 0 0" /></ctdb>`, ErrNoChecksums},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCTDBChecksums(toc, []byte(tt.xml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
