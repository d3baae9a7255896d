package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/log"
	"github.com/binaryphile/cdtoc/internal/tag"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Read or write the CDTOC stored in an audio file's tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <file>",
		Short: "Print the CDTOC of an MP3, FLAC or Ogg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := tag.Read(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			report := struct {
				Path  string `json:"path" yaml:"path"`
				CDTOC string `json:"cdtoc" yaml:"cdtoc"`
			}{args[0], toc.String()}
			return render(cmd, report, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, report.CDTOC)
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <mp3> <cdtoc>",
		Short: "Store a CDTOC in an MP3 file's ID3v2 tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := parseToc(args[1])
			if err != nil {
				return err
			}
			if err := tag.Write(args[0], toc); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.Logger.Info("tagged", zap.String("path", args[0]), zap.Stringer("cdtoc", toc))
			return nil
		},
	})

	return cmd
}
