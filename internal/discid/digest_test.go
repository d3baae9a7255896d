package discid

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_Encodings(t *testing.T) {
	d := NewMusicBrainz(mustParse(t, "4+96+2D2B+6256+B327+D84A"))

	mb := d.Encode(EncodingMusicBrainz)
	std := d.Encode(EncodingBase64)
	hx := d.Encode(EncodingHex)

	assert.Equal(t, "nljDXdC8B_pDwbdY1vZJvdrAZI4-", mb)
	assert.Equal(t, strings.NewReplacer(".", "+", "_", "/", "-", "=").Replace(mb), std)
	assert.Len(t, hx, 40)
	assert.Equal(t, strings.ToLower(hx), hx)

	for enc, s := range map[Encoding]string{
		EncodingMusicBrainz: mb,
		EncodingBase64:      std,
		EncodingHex:         hx,
	} {
		decoded, err := DecodeDigest(s, enc)
		require.NoError(t, err, enc.String())
		assert.True(t, decoded.Equal(d), enc.String())
		assert.Equal(t, 0, decoded.Compare(d))
		assert.Equal(t, enc, decoded.Encoding())
		assert.Equal(t, s, decoded.String())
	}

	upper, err := DecodeDigest(strings.ToUpper(hx), EncodingHex)
	require.NoError(t, err)
	assert.True(t, upper.Equal(d))
}

func TestDecodeDigest_Errors(t *testing.T) {
	tests := []struct {
		name string
		s    string
		enc  Encoding
	}{
		{"hex too short", strings.Repeat("a", 39), EncodingHex},
		{"hex alphabet", strings.Repeat("g", 40), EncodingHex},
		{"base64 length", "nljDXdC8B_pDwbdY1vZJvdrAZI4", EncodingMusicBrainz},
		{"musicbrainz alphabet", "nljDXdC8B/pDwbdY1vZJvdrAZI4=", EncodingMusicBrainz},
		{"standard alphabet", "nljDXdC8B_pDwbdY1vZJvdrAZI4-", EncodingBase64},
		{"unknown encoding", strings.Repeat("a", 28), Encoding(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDigest(tt.s, tt.enc)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestDigest_Compare(t *testing.T) {
	lo := NewDigest([DigestSize]byte{0x01}, EncodingHex)
	hi := NewDigest([DigestSize]byte{0x02}, EncodingMusicBrainz)

	assert.Equal(t, -1, lo.Compare(hi))
	assert.Equal(t, 1, hi.Compare(lo))
	assert.False(t, lo.Equal(hi))
	assert.True(t, hi.Equal(hi.WithEncoding(EncodingHex)))
}

func TestDigest_JSON(t *testing.T) {
	type ids struct {
		CTDB        Digest `json:"ctdb"`
		MusicBrainz Digest `json:"musicbrainz"`
	}

	toc := mustParse(t, "4+96+2D2B+6256+B327+D84A")
	in := ids{CTDB: NewCTDB(toc), MusicBrainz: NewMusicBrainz(toc)}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"musicbrainz":"nljDXdC8B_pDwbdY1vZJvdrAZI4-"`)

	var out ids
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
