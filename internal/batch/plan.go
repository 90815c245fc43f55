package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/meshedit/internal/editor"
	"go.uber.org/zap"
)

// Options select the files of a batch run.
type Options struct {
	Kind        editor.Kind
	Source      string
	Destination string
	// Home, when set, overrides Source and Destination with HomeLayout
	Home               string
	Extension          string
	Overwrite          bool
	PreserveSubfolders bool
}

// Prepare validates the directories, creates the destination when missing
// and returns the pairs still to be processed.
func Prepare(opts Options, log *zap.Logger) ([]Pair, error) {
	if log == nil {
		log = zap.NewNop()
	}

	src, dst := opts.Source, opts.Destination
	if opts.Home != "" {
		if !isDir(opts.Home) {
			return nil, fmt.Errorf("%w: home %s", ErrNotDirectory, opts.Home)
		}
		src, dst = HomeLayout(opts.Home, opts.Kind)
	}

	if !isDir(src) {
		return nil, fmt.Errorf("%w: source %s", ErrNotDirectory, src)
	}
	if same, err := samePath(src, dst); err != nil {
		return nil, err
	} else if same {
		return nil, fmt.Errorf("%w: %s", ErrSameDirectory, src)
	}
	if !isDir(dst) {
		log.Info("destination path not found, creating it", zap.String("path", dst))
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create destination %s: %w", dst, err)
		}
	}

	files, duplicates, err := Discover(src, opts.Extension)
	if err != nil {
		return nil, err
	}
	for _, d := range duplicates {
		log.Warn("duplicate file name, only the first is processed", zap.String("path", d))
	}

	pairs := MakePairs(dst, files, OutputExt(opts.Kind), opts.PreserveSubfolders)
	if !opts.Overwrite {
		pairs = SkipExisting(pairs)
	}

	log.Info("ready to process files",
		zap.Int("found", len(files)),
		zap.Int("pending", len(pairs)),
		zap.String("source", src),
		zap.String("destination", dst))
	return pairs, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", b, err)
	}
	return absA == absB, nil
}
