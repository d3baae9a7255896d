// Package tag stores a disc's table of contents in the tags of a ripped
// track: the ID3v2 user-defined text frame dBpoweramp and other rippers use
// for MP3, and the CDTOC Vorbis comment for FLAC and Ogg.
package tag

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/bogem/id3v2/v2"
)

// Description is the TXXX frame description the CDTOC is stored under.
const Description = "CDTOC"

const userTextFrameID = "TXXX"

var (
	// ErrNoCDTOC is returned when a file carries no CDTOC frame.
	ErrNoCDTOC = errors.New("no CDTOC frame")

	// ErrReadOnly is returned when writing to a format that can only be read.
	ErrReadOnly = errors.New("tag format is read-only")
)

// Read returns the table of contents stored in a file's tags. FLAC and Ogg
// files are read from their Vorbis comments; anything else is treated as MP3.
// This is boundary code - performs file I/O.
func Read(path string) (cdda.Toc, error) {
	if isVorbis(path) {
		return readVorbis(path)
	}
	return readID3(path)
}

func readID3(path string) (cdda.Toc, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	value, ok := find(tag)
	if !ok {
		return cdda.Toc{}, ErrNoCDTOC
	}

	toc, err := cdda.Parse(value)
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("parse %s frame: %w", Description, err)
	}
	return toc, nil
}

// Write stores toc in an MP3 file's tag, replacing any CDTOC frame already
// present and leaving other frames alone. Vorbis comments are ErrReadOnly.
// This is boundary code - performs file I/O.
func Write(path string, toc cdda.Toc) error {
	if isVorbis(path) {
		return fmt.Errorf("%w: %s", ErrReadOnly, filepath.Ext(path))
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	// Set ID3v2.4
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)

	// TXXX frames can only be removed as a group
	keep := otherUserFrames(tag)
	tag.DeleteFrames(userTextFrameID)
	for _, f := range keep {
		tag.AddUserDefinedTextFrame(f)
	}

	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: Description,
		Value:       toc.String(),
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}

	return nil
}

func find(tag *id3v2.Tag) (string, bool) {
	for _, f := range tag.GetFrames(userTextFrameID) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && udtf.Description == Description {
			return udtf.Value, true
		}
	}
	return "", false
}

func otherUserFrames(tag *id3v2.Tag) []id3v2.UserDefinedTextFrame {
	var out []id3v2.UserDefinedTextFrame
	for _, f := range tag.GetFrames(userTextFrameID) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && udtf.Description != Description {
			out = append(out, udtf)
		}
	}
	return out
}
