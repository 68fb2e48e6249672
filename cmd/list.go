package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists built-in songs",
	Long:  `Lists the built-in songs with their tempo and length`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range summaries() {
			fmt.Printf("%-20s %-36s %5.0f bpm %3d bars %2d tracks\n", s.ID, s.Name, s.Tempo, s.Bars, s.Tracks)
		}
	},
}
