package cmd

import (
	"fmt"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/file"
	"github.com/jsphweid/danseband/midi"
	"github.com/jsphweid/danseband/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Creates a report",
	Long:  `Summarizes the rendered MIDI files in the output directory`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetOutputDir()
		if len(args) == 1 {
			dir = args[0]
		}
		r, err := analyzeRenders(dir)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	},
}

type rendersReport struct {
	numFiles    int
	numBad      int
	numBars     []int
	numNotes    []int
	numBends    []int
	numControls []int
}

func analyzeRenders(dir string) (rendersReport, error) {
	var report rendersReport
	paths, err := file.ListRenders(dir)
	if err != nil {
		return report, err
	}

	for _, path := range paths {
		summary, err := midi.SummarizeFile(path)
		if err != nil {
			report.numBad += 1
			continue
		}
		report.numFiles += 1
		report.numBars = append(report.numBars, summary.Bars)
		report.numNotes = append(report.numNotes, summary.Notes())

		var bends, controls int
		for _, track := range summary.Tracks {
			bends += track.PitchBends
			controls += track.Controllers
		}
		report.numBends = append(report.numBends, bends)
		report.numControls = append(report.numControls, controls)
	}
	return report, nil
}

func printReport(r rendersReport) {
	fmt.Printf("rendered files: %v\n", r.numFiles)
	fmt.Printf("unreadable files: %v\n", r.numBad)
	if r.numFiles == 0 {
		return
	}
	fmt.Printf("total bars: %v\n", util.Sum(r.numBars))
	fmt.Printf("total notes: %v\n", util.Sum(r.numNotes))
	fmt.Printf("total pitch bends: %v\n", util.Sum(r.numBends))
	fmt.Printf("total controller events: %v\n", util.Sum(r.numControls))
	fmt.Printf("avg notes per file: %.1f\n", float64(util.Sum(r.numNotes))/float64(r.numFiles))
}
