// Command cdtoc inspects CD tables of contents and computes the disc
// identifiers used by AccurateRip, freedb, CUETools and MusicBrainz.
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree, logging any failure at error level before
// the logger is flushed.
func run(args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		log.Logger.Error("command failed", zap.Error(err))
	}
	log.Sync()
	return err
}
