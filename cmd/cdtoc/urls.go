package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/binaryphile/cdtoc/internal/discid"
)

type urlsReport struct {
	AccurateRip string `json:"accuraterip" yaml:"accuraterip"`
	CTDB        string `json:"ctdb" yaml:"ctdb"`
	MusicBrainz string `json:"musicbrainz" yaml:"musicbrainz"`
}

func newURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "urls <cdtoc>",
		Short: "Print the checksum and lookup URLs for a disc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := parseToc(args[0])
			if err != nil {
				return err
			}

			report := urlsReport{
				AccurateRip: discid.NewAccurateRip(toc).ChecksumURL(),
				CTDB:        discid.CTDBLookupURL(toc),
				MusicBrainz: discid.MusicBrainzLookupURL(toc),
			}
			return render(cmd, report, report.writeText)
		},
	}
}

func (r urlsReport) writeText(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "AccurateRip\t%s\n", r.AccurateRip)
	fmt.Fprintf(tw, "CTDB\t%s\n", r.CTDB)
	fmt.Fprintf(tw, "MusicBrainz\t%s\n", r.MusicBrainz)
	return tw.Flush()
}
