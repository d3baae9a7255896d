package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/log"
)

func newFromWAVCmd() *cobra.Command {
	var leadin uint32

	cmd := &cobra.Command{
		Use:   "fromwav <track.wav>...",
		Short: "Rebuild a CDTOC from the ripped track WAV files of a disc",
		Long: `fromwav reads the length of each WAV file, given in track order, and
prints the audio-only disc layout they add up to. CD audio tracks must
hold whole sectors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			durations := make([]cdda.Duration, 0, len(args))
			for _, path := range args {
				d, err := wavDuration(path)
				if err != nil {
					return err
				}
				log.Logger.Debug("track length", zap.String("path", path), zap.Stringer("duration", d))
				durations = append(durations, d)
			}

			toc, err := cdda.FromDurations(durations, leadin)
			if err != nil {
				return fmt.Errorf("build CDTOC: %w", err)
			}

			report := newInfoReport(toc)
			return render(cmd, report, report.writeText)
		},
	}

	cmd.Flags().Uint32Var(&leadin, "leadin", cdda.MinLeadin, "start sector of the first track")
	return cmd
}

func wavDuration(path string) (cdda.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open WAV: %w", err)
	}
	defer f.Close()

	h, err := cdda.ReadWAVHeader(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if !h.IsCDDA() {
		log.Logger.Warn("not CD audio, truncating to whole sectors",
			zap.String("path", path),
			zap.Uint16("channels", h.Channels),
			zap.Uint32("sample_rate", h.SampleRate),
			zap.Uint16("bits", h.BitsPerSample),
		)
	}

	d, err := h.Duration()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
