package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/discid"
)

type idsReport struct {
	CDTOC       cdda.Toc           `json:"cdtoc" yaml:"cdtoc"`
	AccurateRip discid.AccurateRip `json:"accuraterip" yaml:"accuraterip"`
	CDDB        discid.CDDB        `json:"cddb" yaml:"cddb"`
	CTDB        discid.Digest      `json:"ctdb" yaml:"ctdb"`
	MusicBrainz discid.Digest      `json:"musicbrainz" yaml:"musicbrainz"`
}

func newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids <cdtoc>",
		Short: "Compute the AccurateRip, CDDB, CTDB and MusicBrainz disc ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := parseToc(args[0])
			if err != nil {
				return err
			}

			report := idsReport{
				CDTOC:       toc,
				AccurateRip: discid.NewAccurateRip(toc),
				CDDB:        discid.NewCDDB(toc),
				CTDB:        discid.NewCTDB(toc),
				MusicBrainz: discid.NewMusicBrainz(toc),
			}
			return render(cmd, report, report.writeText)
		},
	}
}

func (r idsReport) writeText(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "AccurateRip\t%s\n", r.AccurateRip)
	fmt.Fprintf(tw, "CDDB\t%s\n", r.CDDB)
	fmt.Fprintf(tw, "CTDB\t%s\n", r.CTDB)
	fmt.Fprintf(tw, "MusicBrainz\t%s\n", r.MusicBrainz)
	return tw.Flush()
}
