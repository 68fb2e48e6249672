package cmd

import (
	"fmt"

	"github.com/jsphweid/danseband/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints tempo, length and per-track event counts of a MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	summary, err := midi.SummarizeFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("file: %v\n", summary.Path)
	fmt.Printf("tempo: %.2f\n", summary.Tempo)
	fmt.Printf("ticks: %v (%v bars)\n", summary.Ticks, summary.Bars)
	for i, track := range summary.Tracks {
		fmt.Printf("track %d %q: notes=%d controllers=%d bends=%d lyrics=%d\n",
			i, track.Name, track.Notes, track.Controllers, track.PitchBends, track.Lyrics)
	}
	return nil
}
