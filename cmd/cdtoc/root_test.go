package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gotest.tools/v3/golden"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/discid"
)

const (
	cdtocAudio = "4+96+2D2B+6256+B327+D84A"
	cdtocExtra = "A+96+3757+696D+C64F+10A13+14DA2+19E88+1DBAA+213A4+2784E+2D7AF+36F11"
)

// execute runs the command tree with args and returns what it wrote to
// stdout. HOME points at an empty directory so no user config leaks in.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestIDs(t *testing.T) {
	out, err := execute(t, "ids", cdtocAudio)
	require.NoError(t, err)
	golden.Assert(t, out, "ids.golden")
}

func TestURLs(t *testing.T) {
	out, err := execute(t, "urls", cdtocAudio)
	require.NoError(t, err)
	golden.Assert(t, out, "urls.golden")
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", cdtocAudio)
	require.NoError(t, err)
	golden.Assert(t, out, "info.golden")
}

func TestInfo_CDExtra(t *testing.T) {
	out, err := execute(t, "info", cdtocExtra)
	require.NoError(t, err)

	assert.Contains(t, out, "CD-Extra")
	assert.Contains(t, out, "Audio leadout")
	assert.Regexp(t, `(?m)^11\s+186287\s+225041\s+\S+\s+data$`, out)
}

func TestInfo_HTOA(t *testing.T) {
	out, err := execute(t, "info", "2+B6+2D2B+6256")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^00\s+150\s+182\s+00:00:00\+32\s+htoa$`, out)
}

func TestIDs_JSON(t *testing.T) {
	out, err := execute(t, "ids", "--output", "json", cdtocAudio)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{
		"cdtoc":       cdtocAudio,
		"accuraterip": "004-0002189a-00087f33-1f02e004",
		"cddb":        "1f02e004",
		"ctdb":        "56e90c59622d6e510b44cf82105a57c70d0594c1",
		"musicbrainz": "nljDXdC8B_pDwbdY1vZJvdrAZI4-",
	}, got)
}

func TestInfo_YAML(t *testing.T) {
	out, err := execute(t, "info", "-o", "yaml", cdtocExtra)
	require.NoError(t, err)

	var got infoReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, cdtocExtra, got.CDTOC.String())
	assert.Equal(t, "CD-Extra", got.Kind)
	assert.Equal(t, uint32(225041), got.Leadout)
	assert.Equal(t, uint32(186287-cdda.CDExtraGap), got.AudioLeadout)
	require.Len(t, got.Tracks, 11)
	assert.True(t, got.Tracks[10].Data)
}

func TestBadCDTOC(t *testing.T) {
	for _, name := range []string{"info", "ids", "urls"} {
		_, err := execute(t, name, "2+96")
		assert.ErrorIs(t, err, cdda.ErrMalformedToc, name)
	}
}

func TestOutputFormat_Invalid(t *testing.T) {
	_, err := execute(t, "ids", "--output", "xml", cdtocAudio)
	assert.ErrorContains(t, err, `output format "xml"`)
}

func TestLogLevel_Invalid(t *testing.T) {
	_, err := execute(t, "ids", "--log-level", "loud", cdtocAudio)
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "cdtoc.yml", []byte("output: json\nlog-level: error\n"))

	out, err := execute(t, "--config", cfg, "ids", cdtocAudio)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "expected JSON output, got %q", out)

	// Flags beat the config file
	out, err = execute(t, "--config", cfg, "--output", "text", "ids", cdtocAudio)
	require.NoError(t, err)
	golden.Assert(t, out, "ids.golden")
}

func TestConfigFile_Missing(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yml"), "ids", cdtocAudio)
	assert.ErrorContains(t, err, "read config")
}

func TestEnv(t *testing.T) {
	t.Setenv("CDTOC_OUTPUT", "json")
	t.Setenv("CDTOC_LOG_LEVEL", "error")

	out, err := execute(t, "urls", cdtocAudio)
	require.NoError(t, err)

	var got urlsReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "http://www.accuraterip.com/accuraterip/a/9/8/dBAR-004-0002189a-00087f33-1f02e004.bin", got.AccurateRip)
}

// dBAR builds a dBAR file holding one submission per set of per-track
// (confidence, crc) pairs.
func dBAR(t *testing.T, submissions ...[][2]uint32) []byte {
	t.Helper()
	toc, err := cdda.Parse(cdtocAudio)
	require.NoError(t, err)
	id := discid.NewAccurateRip(toc)

	var out []byte
	for _, tracks := range submissions {
		out = append(out, id[:]...)
		for _, tr := range tracks {
			out = append(out, byte(tr[0]))
			out = binary.LittleEndian.AppendUint32(out, tr[1])
			out = append(out, 0, 0, 0, 0)
		}
	}
	return out
}

func TestChecksums_AccurateRip(t *testing.T) {
	bin := writeFile(t, "dBAR.bin", dBAR(t,
		[][2]uint32{{3, 0xa1b2c3d4}, {3, 0x11111111}, {3, 0}, {3, 0x01020304}},
		[][2]uint32{{9, 0xffffffff}, {2, 0x11111111}, {2, 0xdeadbeef}, {2, 0x01020304}},
	))

	out, err := execute(t, "checksums", "accuraterip", "-o", "json", cdtocAudio, bin)
	require.NoError(t, err)

	var got []trackChecksums
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []trackChecksums{
		{Track: 1, Checksums: []checksum{{"ffffffff", 9}, {"a1b2c3d4", 3}}},
		{Track: 2, Checksums: []checksum{{"11111111", 5}}},
		{Track: 3, Checksums: []checksum{{"deadbeef", 2}}},
		{Track: 4, Checksums: []checksum{{"01020304", 5}}},
	}, got)
}

func TestChecksums_AccurateRipWrongDisc(t *testing.T) {
	bin := writeFile(t, "dBAR.bin", dBAR(t,
		[][2]uint32{{3, 0xa1b2c3d4}, {3, 0x11111111}, {3, 0}, {3, 0x01020304}},
	))

	_, err := execute(t, "checksums", "accuraterip", "1+96+97", bin)
	assert.ErrorIs(t, err, discid.ErrChecksums)
}

func TestChecksums_CTDB(t *testing.T) {
	xml := writeFile(t, "ctdb.xml", []byte(`<?xml version="1.0" encoding="utf-8"?>
<ctdb xmlns="http://db.cuetools.net/ns/mmd-1.0#">
  <entry confidence="12" trackcrcs="a1b2c3d4 00000000 deadbeef 01020304" />
  <entry confidence="3" trackcrcs="a1b2c3d4 22222222 deadbeef 00000001" />
</ctdb>
`))

	out, err := execute(t, "checksums", "ctdb", cdtocAudio, xml)
	require.NoError(t, err)
	assert.Equal(t, `Track  CRC       Confidence
01     a1b2c3d4  15
02     22222222  3
03     deadbeef  15
04     01020304  12
04     00000001  3
`, out)
}

func TestChecksums_MissingFile(t *testing.T) {
	_, err := execute(t, "checksums", "ctdb", cdtocAudio, filepath.Join(t.TempDir(), "absent.xml"))
	assert.ErrorContains(t, err, "read checksums")
}

func TestReadTOC(t *testing.T) {
	raw := writeFile(t, "toc.bin", []byte{
		0x00, 0x22,
		0x01, 0x03,
		0x00, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x10, 0x02, 0x00, 0x00, 0x00, 0x46, 0xB4,
		0x00, 0x10, 0x03, 0x00, 0x00, 0x00, 0x8D, 0xFE,
		0x00, 0x10, 0xAA, 0x00, 0x00, 0x00, 0xD5, 0x48,
	})

	out, err := execute(t, "readtoc", "-o", "json", raw)
	require.NoError(t, err)

	var got infoReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3+96+474A+8E94+D5DE", got.CDTOC.String())
	assert.Len(t, got.Tracks, 3)
}

func TestReadTOC_Truncated(t *testing.T) {
	raw := writeFile(t, "toc.bin", []byte{0x00, 0x00, 0x01})
	_, err := execute(t, "readtoc", raw)
	assert.Error(t, err)
}

func TestFromWAV(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, sectors := range []int{10, 20, 30} {
		path := filepath.Join(dir, []string{"01.wav", "02.wav", "03.wav"}[i])
		require.NoError(t, os.WriteFile(path, cdda.WriteWAV(make([]byte, sectors*cdda.BytesPerSector)), 0644))
		paths = append(paths, path)
	}

	out, err := execute(t, append([]string{"fromwav", "-o", "json"}, paths...)...)
	require.NoError(t, err)

	var got infoReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3+96+A0+B4+D2", got.CDTOC.String())

	out, err = execute(t, append([]string{"fromwav", "--leadin", "182", "-o", "json"}, paths...)...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3+B6+C0+D4+F2", got.CDTOC.String())
}

func TestFromWAV_PartialSector(t *testing.T) {
	path := writeFile(t, "01.wav", cdda.WriteWAV(make([]byte, cdda.BytesPerSector+4)))
	_, err := execute(t, "fromwav", path)
	assert.ErrorIs(t, err, cdda.ErrSampleCount)
}

func TestFromWAV_NotWAV(t *testing.T) {
	path := writeFile(t, "01.wav", []byte("definitely not a RIFF file"))
	_, err := execute(t, "fromwav", path)
	assert.ErrorIs(t, err, cdda.ErrWAVFormat)
}

func TestTag_SetGet(t *testing.T) {
	mp3 := writeFile(t, "01.mp3", []byte("not really mpeg audio"))

	out, err := execute(t, "tag", "set", mp3, cdtocExtra)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "tag", "get", mp3)
	require.NoError(t, err)
	if out != cdtocExtra+"\n" {
		t.Errorf("tag get = %q, want %q", out, cdtocExtra+"\n")
	}
}

func TestTag_SetInvalid(t *testing.T) {
	mp3 := writeFile(t, "01.mp3", []byte("not really mpeg audio"))
	_, err := execute(t, "tag", "set", mp3, "0+96")
	assert.ErrorIs(t, err, cdda.ErrMalformedToc)
}

func TestReadTOC_CDB(t *testing.T) {
	out, err := execute(t, "readtoc", "--cdb")
	require.NoError(t, err)
	assert.Equal(t, "43 00 00 00 00 00 00 03 fc 00\n", out)

	_, err = execute(t, "readtoc", "--cdb", "toc.bin")
	assert.Error(t, err)
}

func TestRun_LogsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	stderr, err := os.Create(filepath.Join(t.TempDir(), "stderr"))
	require.NoError(t, err)
	defer stderr.Close()

	saved := os.Stderr
	os.Stderr = stderr
	err = run([]string{"ids", "--log-format", "json", "2+96"})
	os.Stderr = saved

	assert.ErrorIs(t, err, cdda.ErrMalformedToc)

	logged, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"level":"error"`)
	assert.Contains(t, string(logged), `"msg":"command failed"`)
}

func TestFromWAV_LeadinTooSmall(t *testing.T) {
	path := writeFile(t, "01.wav", cdda.WriteWAV(make([]byte, 10*cdda.BytesPerSector)))
	_, err := execute(t, "fromwav", "--leadin", "0", path)
	assert.ErrorIs(t, err, cdda.ErrLeadinSize)
}
