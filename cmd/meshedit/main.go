package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/meshedit/internal/config"
	"github.com/philipparndt/meshedit/internal/logger"
	"github.com/philipparndt/meshedit/version"
	"github.com/spf13/cobra"
)

// cfg is loaded before any subcommand runs
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "meshedit",
	Short: "Interactive cleaning and landmarking of 3D surface meshes",
	Long: `meshedit opens surface meshes (OBJ, STL, OpenSCAD) in an interactive viewer
to delete unwanted regions with a brush or geodesic selection, or to place
landmark points. It can also walk a whole directory tree in batch.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
