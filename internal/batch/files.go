// Package batch walks a source tree of meshes and runs an interactive
// editing session for each one that has no result yet.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/philipparndt/meshedit/internal/editor"
)

var (
	// ErrNameMismatch means a source and its destination disagree on the base name
	ErrNameMismatch = errors.New("input and output file names do not match")
	// ErrSameDirectory means results would be written next to the sources
	ErrSameDirectory = errors.New("source and destination paths cannot be the same")
	// ErrNotDirectory means a configured path is missing or not a directory
	ErrNotDirectory = errors.New("path does not exist or is not a directory")
)

// File locates a file as Root/SubPath/Name+Ext.
type File struct {
	Root    string
	SubPath string
	Name    string
	Ext     string
}

// Path joins the parts into a file path.
func (f File) Path() string {
	return filepath.Join(f.Root, f.SubPath, f.Name+f.Ext)
}

// Pair is a source file and the result file written for it.
type Pair struct {
	In  File
	Out File
}

// Check fails with ErrNameMismatch when the two names differ.
func (p Pair) Check() error {
	if p.In.Name != p.Out.Name {
		return fmt.Errorf("%w: %s and %s", ErrNameMismatch, p.In.Path(), p.Out.Path())
	}
	return nil
}

// OutputExt returns the result extension for a session kind.
func OutputExt(kind editor.Kind) string {
	if kind == editor.KindLandmark {
		return ".txt"
	}
	return ".obj"
}

// Discover finds files under src with extension ext, case-insensitively.
// Hidden files are skipped. When two files share a base name only the first
// in lexical walk order is kept; the paths of the others are returned as
// duplicates.
func Discover(src, ext string) (files []File, duplicates []string, err error) {
	ext = strings.ToLower(ext)
	seen := make(map[string]bool)

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		fileExt := filepath.Ext(d.Name())
		if strings.ToLower(fileExt) != ext {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), fileExt)
		if seen[name] {
			duplicates = append(duplicates, path)
			return nil
		}
		seen[name] = true

		rel, err := filepath.Rel(src, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		files = append(files, File{Root: src, SubPath: rel, Name: name, Ext: fileExt})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", src, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files, duplicates, nil
}

// MakePairs maps each file into dst with extension outExt. Sub-folders are
// kept when preserve is set and flattened otherwise.
func MakePairs(dst string, files []File, outExt string, preserve bool) []Pair {
	pairs := make([]Pair, 0, len(files))
	for _, in := range files {
		out := File{Root: dst, SubPath: in.SubPath, Name: in.Name, Ext: outExt}
		if !preserve {
			out.SubPath = ""
		}
		pairs = append(pairs, Pair{In: in, Out: out})
	}
	return pairs
}

// SkipExisting drops pairs whose result file already exists.
func SkipExisting(pairs []Pair) []Pair {
	kept := pairs[:0:0]
	for _, p := range pairs {
		if _, err := os.Stat(p.Out.Path()); err == nil {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// HomeLayout returns the source and destination directories of a study
// home directory for the given session kind.
func HomeLayout(home string, kind editor.Kind) (src, dst string) {
	src = filepath.Join(home, "IMAGES", "01 ORIGINAL IMAGES")
	switch kind {
	case editor.KindLandmark:
		dst = filepath.Join(home, "IMAGES", "22 TEXT POSE POINTS")
	default:
		dst = filepath.Join(home, "IMAGES", "31 OBJ CLEANED")
	}
	return src, dst
}
