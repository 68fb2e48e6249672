package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "danseband",
	Short: "Danseband MIDI arranger",
	Long: `Renders danseband arrangements (bass, rhythm guitar, drums, accordion,
steel guitar, vocals, saxes) into multi-track Standard MIDI Files.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
