package main

import (
	"fmt"

	"github.com/philipparndt/meshedit/internal/app"
	"github.com/philipparndt/meshedit/internal/batch"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	batchLandmarks bool
	batchOverwrite bool
	batchFlat      bool
	batchPreload   bool
	batchHome      string
	batchExt       string
)

var batchCmd = &cobra.Command{
	Use:   "batch [source] [destination]",
	Short: "Edit or landmark every mesh in a directory tree",
	Long: `Find all meshes below source and open them one after another. Results are
written below destination with the same sub-folders unless --flat is given.
Files that already have a result are skipped unless --overwrite is given.
With --home the source and destination follow the study folder layout.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if batchHome != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVarP(&batchLandmarks, "landmarks", "l", false, "Place landmarks instead of cleaning meshes")
	batchCmd.Flags().BoolVar(&batchOverwrite, "overwrite", false, "Process files that already have a result")
	batchCmd.Flags().BoolVar(&batchFlat, "flat", false, "Write all results directly into the destination")
	batchCmd.Flags().BoolVar(&batchPreload, "preload", false, "Load all meshes before the first session")
	batchCmd.Flags().StringVar(&batchHome, "home", "", "Study home directory with the IMAGES folder layout")
	batchCmd.Flags().StringVar(&batchExt, "ext", "", "Source file extension (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.Named("batch")

	kind := editor.KindEdit
	if batchLandmarks {
		kind = editor.KindLandmark
	}

	opts := batch.Options{
		Kind:               kind,
		Home:               batchHome,
		Extension:          cfg.Batch.Extension,
		Overwrite:          cfg.Batch.Overwrite || batchOverwrite,
		PreserveSubfolders: cfg.Batch.PreserveSubfolders && !batchFlat,
	}
	if len(args) == 2 {
		opts.Source, opts.Destination = args[0], args[1]
	}
	if batchExt != "" {
		opts.Extension = batchExt
	}

	pairs, err := batch.Prepare(opts, log)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Println("Nothing to process.")
		return nil
	}

	runner := &batch.Runner{
		Kind:    kind,
		Preload: cfg.Batch.Preload || batchPreload,
		Log:     log,
	}
	report, err := runner.Run(cmd.Context(), pairs, app.NewViewer(cfg, logger.Named("viewer")))
	fmt.Printf("Processed %d of %d files\n", len(report.Processed), len(pairs))
	for _, f := range report.Failed {
		fmt.Printf("  failed: %s: %v\n", f.Path, f.Err)
	}
	return err
}
