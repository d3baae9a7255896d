package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/cdda"
	"github.com/binaryphile/cdtoc/internal/log"
)

func newReadTOCCmd() *cobra.Command {
	var printCDB bool

	cmd := &cobra.Command{
		Use:   "readtoc <file>",
		Short: "Convert a saved SCSI READ TOC response to a CDTOC",
		Long: `readtoc decodes the raw response of a READ TOC command (format 0, LBA
addressing), as saved by sg_raw or a similar tool, and prints the disc
layout it describes.

With --cdb it prints the command bytes to send instead, e.g.

  sg_raw -r 1020 -o toc.bin /dev/sr0 $(cdtoc readtoc --cdb)`,
		Args: func(cmd *cobra.Command, args []string) error {
			if printCDB {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if printCDB {
				return printReadTOCCommand(cmd)
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read TOC response: %w", err)
			}

			toc, err := cdda.ParseReadTOC(raw)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			log.Logger.Debug("decoded READ TOC", zap.String("path", args[0]), zap.Stringer("cdtoc", toc))

			report := newInfoReport(toc)
			return render(cmd, report, report.writeText)
		},
	}

	cmd.Flags().BoolVar(&printCDB, "cdb", false, "print the READ TOC command bytes and exit")
	return cmd
}

func printReadTOCCommand(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	for i, b := range cdda.ReadTOCCommand() {
		sep := " "
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s%02x", sep, b); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
