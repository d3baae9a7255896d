package cdda

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	opReadTOC    = 0x43
	readTOCAlloc = 1020

	leadoutTrack = 0xAA
	controlData  = 0x04
	tocEntrySize = 8
)

// ErrReadTOCShort is returned when a READ TOC response is missing its header.
var ErrReadTOCShort = errors.New("TOC data too short: need at least 4 bytes")

// ReadTOCCommand returns the 10-byte CDB of the READ TOC request whose
// response ParseReadTOC understands: format 0, every track, LBA addressing.
// MSF addressing (byte 1 = 0x02) would return a response in a different
// layout.
func ReadTOCCommand() []byte {
	return []byte{
		opReadTOC,
		0x00, // LBA, not MSF
		0, 0, 0, 0,
		0, // Starting track (0 = all tracks)
		readTOCAlloc >> 8, readTOCAlloc & 0xFF,
		0,
	}
}

// ParseReadTOC decodes the response to a SCSI READ TOC command (format 0,
// LBA addressing) into a Toc.
//
// Drives report LBAs relative to the end of the mandatory lead-in, so every
// address is shifted by 150 to produce absolute sectors. A track with the
// data bit set in its control nibble becomes the CD-Extra data track; it must
// be the last track on the disc.
func ParseReadTOC(raw []byte) (Toc, error) {
	if len(raw) < 4 {
		return Toc{}, ErrReadTOCShort
	}

	// Header: 2-byte length (big-endian), first track, last track.
	// The length counts everything after the length field itself.
	tocLen := int(binary.BigEndian.Uint16(raw[0:2]))
	firstTrack := int(raw[2])
	lastTrack := int(raw[3])

	dataEnd := min(tocLen+2, len(raw))

	var (
		audio   []uint32
		data    uint32
		leadout uint32
		found   bool
	)

	// Entries: reserved, ADR/control, track number, reserved, LBA (big-endian)
	for offset := 4; offset+tocEntrySize <= dataEnd; offset += tocEntrySize {
		control := raw[offset+1] & 0x0F
		trackNum := int(raw[offset+2])
		lba := binary.BigEndian.Uint32(raw[offset+4 : offset+8])

		sector := uint64(lba) + MinLeadin
		if sector > 1<<32-1 {
			return Toc{}, ErrSectorSize
		}

		if trackNum == leadoutTrack {
			leadout = uint32(sector)
			found = true
			break
		}

		if trackNum < firstTrack || trackNum > lastTrack {
			continue
		}

		if data != 0 {
			return Toc{}, fmt.Errorf("%w: data track %d is not the last track", ErrMalformedToc, trackNum-1)
		}
		if control&controlData != 0 {
			data = uint32(sector)
			continue
		}
		audio = append(audio, uint32(sector))
	}

	if !found {
		return Toc{}, fmt.Errorf("%w: no lead-out entry", ErrMalformedToc)
	}

	return New(audio, data, leadout)
}
