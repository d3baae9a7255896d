package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/discid"
	"github.com/binaryphile/cdtoc/internal/log"
)

type checksum struct {
	CRC        string `json:"crc" yaml:"crc"`
	Confidence uint16 `json:"confidence" yaml:"confidence"`
}

type trackChecksums struct {
	Track     int        `json:"track" yaml:"track"`
	Checksums []checksum `json:"checksums" yaml:"checksums"`
}

func newChecksumsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksums",
		Short: "Decode saved checksum database responses",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "accuraterip <cdtoc> <dBAR.bin>",
		Short: "Decode an AccurateRip dBAR file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, body, err := readChecksumArgs(args)
			if err != nil {
				return err
			}
			sums, err := discid.NewAccurateRip(toc).ParseChecksums(body)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[1], err)
			}
			return renderChecksums(cmd, sums)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ctdb <cdtoc> <response.xml>",
		Short: "Decode a CUETools database lookup response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, body, err := readChecksumArgs(args)
			if err != nil {
				return err
			}
			sums, err := discid.ParseCTDBChecksums(toc, body)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[1], err)
			}
			return renderChecksums(cmd, sums)
		},
	})
	return cmd
}

func readChecksumArgs(args []string) (cdda.Toc, []byte, error) {
	toc, err := parseToc(args[0])
	if err != nil {
		return cdda.Toc{}, nil, err
	}
	body, err := os.ReadFile(args[1])
	if err != nil {
		return cdda.Toc{}, nil, fmt.Errorf("read checksums: %w", err)
	}
	log.Logger.Debug("read checksum response", zap.String("path", args[1]), zap.Int("bytes", len(body)))
	return toc, body, nil
}

// sortChecksums orders each track's checksums by falling confidence, then by
// CRC.
func sortChecksums[V uint8 | uint16](tracks []map[uint32]V) []trackChecksums {
	out := make([]trackChecksums, 0, len(tracks))
	for i, m := range tracks {
		sums := lo.MapToSlice(m, func(crc uint32, confidence V) checksum {
			return checksum{CRC: fmt.Sprintf("%08x", crc), Confidence: uint16(confidence)}
		})
		slices.SortFunc(sums, func(a, b checksum) int {
			if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
				return c
			}
			return cmp.Compare(a.CRC, b.CRC)
		})
		out = append(out, trackChecksums{Track: i + 1, Checksums: sums})
	}
	return out
}

func renderChecksums[V uint8 | uint16](cmd *cobra.Command, tracks []map[uint32]V) error {
	report := sortChecksums(tracks)
	return render(cmd, report, func(w io.Writer) error {
		tw := newTable(w)
		fmt.Fprintln(tw, "Track\tCRC\tConfidence")
		for _, t := range report {
			for _, c := range t.Checksums {
				fmt.Fprintf(tw, "%02d\t%s\t%d\n", t.Track, c.CRC, c.Confidence)
			}
		}
		return tw.Flush()
	})
}
