package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/log"
)

type trackRow struct {
	Number   uint8  `json:"num" yaml:"num"`
	Position string `json:"pos" yaml:"pos"`
	From     uint32 `json:"from" yaml:"from"`
	To       uint32 `json:"to" yaml:"to"`
	Length   string `json:"length" yaml:"length"`
	Data     bool   `json:"data,omitempty" yaml:"data,omitempty"`
}

type infoReport struct {
	CDTOC        cdda.Toc   `json:"cdtoc" yaml:"cdtoc"`
	Kind         string     `json:"kind" yaml:"kind"`
	Leadin       uint32     `json:"leadin" yaml:"leadin"`
	AudioLeadout uint32     `json:"audio_leadout" yaml:"audio_leadout"`
	Leadout      uint32     `json:"leadout" yaml:"leadout"`
	Duration     string     `json:"duration" yaml:"duration"`
	Tracks       []trackRow `json:"tracks" yaml:"tracks"`
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <cdtoc>",
		Short: "Show the disc layout described by a CDTOC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := parseToc(args[0])
			if err != nil {
				return err
			}
			report := newInfoReport(toc)
			return render(cmd, report, report.writeText)
		},
	}
}

// parseToc parses a CDTOC given on the command line.
func parseToc(s string) (cdda.Toc, error) {
	toc, err := cdda.Parse(s)
	if err != nil {
		return cdda.Toc{}, fmt.Errorf("parse CDTOC: %w", err)
	}
	log.Logger.Debug("parsed CDTOC",
		zap.Stringer("cdtoc", toc),
		zap.Stringer("kind", toc.Kind()),
		zap.Int("audio_tracks", toc.AudioLen()),
	)
	return toc, nil
}

func newInfoReport(toc cdda.Toc) infoReport {
	tracks := toc.Tracks()
	if htoa, ok := toc.HTOA(); ok {
		tracks = append([]cdda.Track{htoa}, tracks...)
	}

	rows := make([]trackRow, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, trackRow{
			Number:   t.Number,
			Position: t.Position.String(),
			From:     t.From,
			To:       t.To,
			Length:   t.Duration().String(),
			Data:     t.IsData,
		})
	}

	return infoReport{
		CDTOC:        toc,
		Kind:         toc.Kind().String(),
		Leadin:       toc.Leadin(),
		AudioLeadout: toc.AudioLeadout(),
		Leadout:      toc.Leadout(),
		Duration:     toc.Duration().String(),
		Tracks:       rows,
	}
}

func (r infoReport) writeText(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "CDTOC\t%s\n", r.CDTOC)
	fmt.Fprintf(tw, "Kind\t%s\n", r.Kind)
	fmt.Fprintf(tw, "Leadin\t%d\n", r.Leadin)
	if r.AudioLeadout != r.Leadout {
		fmt.Fprintf(tw, "Audio leadout\t%d\n", r.AudioLeadout)
	}
	fmt.Fprintf(tw, "Leadout\t%d\n", r.Leadout)
	fmt.Fprintf(tw, "Duration\t%s\n", r.Duration)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintln(tw, "Track\tFrom\tTo\tLength\tType")
	for _, t := range r.Tracks {
		kind := "audio"
		switch {
		case t.Data:
			kind = "data"
		case t.Number == 0:
			kind = "htoa"
		}
		fmt.Fprintf(tw, "%02d\t%d\t%d\t%s\t%s\n", t.Number, t.From, t.To, t.Length, kind)
	}
	return tw.Flush()
}
