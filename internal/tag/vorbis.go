package tag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binaryphile/cdtoc/internal/cdda"
	metatag "github.com/dhowden/tag"
)

// Vorbis comment keys are case-insensitive; the reader lowercases them.
const vorbisKey = "cdtoc"

func isVorbis(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac", ".ogg", ".oga", ".opus":
		return true
	}
	return false
}

func readVorbis(path string) (cdda.Toc, error) {
	f, err := os.Open(path)
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	m, err := metatag.ReadFrom(f)
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("read tags: %w", err)
	}

	value, ok := m.Raw()[vorbisKey].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return cdda.Toc{}, ErrNoCDTOC
	}

	toc, err := cdda.Parse(value)
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("parse %s comment: %w", Description, err)
	}
	return toc, nil
}
