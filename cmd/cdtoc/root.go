package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/binaryphile/cdtoc/internal/log"
)

const (
	appName   = "cdtoc"
	envPrefix = "CDTOC"
)

// newRootCmd builds the command tree. Each call gets its own viper instance
// so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Inspect CD tables of contents and compute disc identifiers",
		Long: `cdtoc reads a CDTOC string (the compact table of contents stored in
audio file tags) and prints the disc layout and its AccurateRip, CDDB,
CTDB and MusicBrainz identifiers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cmd, v, cfgFile); err != nil {
				return err
			}
			if _, err := outputFormat(cmd); err != nil {
				return err
			}

			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			if err := log.Init(level, format); err != nil {
				return err
			}
			if used := v.ConfigFileUsed(); used != "" {
				log.Logger.Debug("using config file", zap.String("path", used))
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.cdtoc.yml)")
	rootCmd.PersistentFlags().String("log-level", "warn",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text",
		"log format (text or json)")
	rootCmd.PersistentFlags().StringP("output", "o", formatText,
		"output format (text, json or yaml)")

	// add commands here
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newIDsCmd())
	rootCmd.AddCommand(newURLsCmd())
	rootCmd.AddCommand(newChecksumsCmd())
	rootCmd.AddCommand(newReadTOCCmd())
	rootCmd.AddCommand(newFromWAVCmd())
	rootCmd.AddCommand(newTagCmd())

	return rootCmd
}

// initConfig reads in config file and ENV variables if set, then applies
// them to every flag the user did not set.
func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName("." + appName)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv() // read in environment variables that match

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return bindFlags(cmd, v)
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to CDTOC_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, envPrefix+"_"+envVarSuffix); err != nil {
				errs = append(errs, fmt.Errorf("bind env var %s: %w", f.Name, err))
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, fmt.Errorf("set flag %s from config: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}
