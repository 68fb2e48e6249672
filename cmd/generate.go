package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/danseband/catalog"
	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/db"
	"github.com/jsphweid/danseband/emitter"
	"github.com/jsphweid/danseband/pattern"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	songFile     string
	outDir       string
	previewBars  int
	recordRender bool
)

func init() {
	generateCmd.Flags().StringVarP(&songFile, "file", "f", "", "render a song definition from a YAML file")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default $GENERATED_PATH or ./generated)")
	generateCmd.Flags().IntVar(&previewBars, "preview", 0, "also write a preview of the first N bars")
	generateCmd.Flags().BoolVar(&recordRender, "record", false, "store a record of each render in DynamoDB")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [song-id...]",
	Short: "Renders songs to MIDI files",
	Long:  `Renders the named built-in songs (all of them when none are named) or a YAML song file to MIDI files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := selectSongs(args)
		if err != nil {
			return err
		}
		dir := outDir
		if dir == "" {
			dir = constants.GetOutputDir()
		}
		for _, def := range defs {
			if err := generate(def, dir); err != nil {
				return errors.Wrapf(err, "song %s", def.ID)
			}
		}
		return nil
	},
}

func selectSongs(ids []string) ([]*catalog.Definition, error) {
	if songFile != "" {
		f, err := os.Open(songFile)
		if err != nil {
			return nil, errors.Wrap(err, "could not open song file")
		}
		defer f.Close()
		def, err := catalog.Load(f)
		if err != nil {
			return nil, err
		}
		return []*catalog.Definition{def}, nil
	}

	if len(ids) == 0 {
		return catalog.All(), nil
	}
	var res []*catalog.Definition
	for _, id := range ids {
		def, ok := catalog.ByID(id)
		if !ok {
			return nil, errors.Errorf("unknown song %q, choose from %v", id, catalog.IDs())
		}
		res = append(res, def)
	}
	return res, nil
}

func generate(def *catalog.Definition, dir string) error {
	fmt.Printf("Rendering %s (%s)...\n", def.ID, def.Name)
	doc, err := emitter.Render(def, pattern.Default())
	if err != nil {
		return err
	}

	path, err := emitter.Emit(doc, dir, def.ID)
	if err != nil {
		return err
	}
	rec := emitter.NewRecord(def.ID, doc, path)
	fmt.Printf("Wrote %s: %d bars, %d notes\n", path, rec.Bars, rec.Notes)

	if previewBars > 0 {
		preview, err := emitter.Preview(doc, previewBars)
		if err != nil {
			return err
		}
		previewPath, err := emitter.EmitFile(preview, dir, def.ID+"_preview")
		if err != nil {
			return err
		}
		fmt.Printf("Wrote preview %s\n", previewPath)
	}

	if recordRender {
		if err := db.RecordRender(rec); err != nil {
			return err
		}
		fmt.Printf("Recorded render %s\n", rec.ID)
	}
	return nil
}
