package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshedit/internal/app"
	"github.com/philipparndt/meshedit/internal/editor"
	"github.com/philipparndt/meshedit/internal/logger"
	"github.com/philipparndt/meshedit/pkg/meshio"
	"github.com/spf13/cobra"
)

var (
	editOutput     string
	landmarkOutput string
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Clean a mesh interactively",
	Long: `Open a mesh with vertex selection enabled. Brush over vertices to select
(left click) or deselect (right click), press g for a geodesic selection of the
connected region, Delete to remove the selection and a to save the result as OBJ.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := editOutput
		if out == "" {
			out = defaultOutput(args[0], "_cleaned.obj")
		}
		return runSession(cmd, args[0], editor.KindEdit, meshio.FileSaver{MeshPath: out})
	},
}

var landmarkCmd = &cobra.Command{
	Use:   "landmark [file]",
	Short: "Place landmarks on a mesh interactively",
	Long: `Open a mesh with landmark placement enabled. Left click places a landmark on
the surface, Delete removes the last one and a saves them as x,y,z rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := landmarkOutput
		if out == "" {
			out = defaultOutput(args[0], ".txt")
		}
		return runSession(cmd, args[0], editor.KindLandmark, meshio.FileSaver{LandmarkPath: out})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(landmarkCmd)

	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "Output OBJ file (default <name>_cleaned.obj next to the input)")
	landmarkCmd.Flags().StringVarP(&landmarkOutput, "output", "o", "", "Output landmark file (default <name>.txt next to the input)")
}

func defaultOutput(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

func runSession(cmd *cobra.Command, path string, kind editor.Kind, saver meshio.FileSaver) error {
	m, err := meshio.Load(cmd.Context(), path)
	if err != nil {
		return err
	}

	viewer := app.NewViewer(cfg, logger.Named("viewer"))
	err = viewer.Run(cmd.Context(), app.Request{
		Mesh:   m,
		Kind:   kind,
		Saver:  saver,
		Source: path,
		Title:  fmt.Sprintf("meshedit %s - %s", kind, filepath.Base(path)),
	})
	if err != nil {
		return fmt.Errorf("%s session failed: %w", kind, err)
	}
	return nil
}
