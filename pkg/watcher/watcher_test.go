package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	other := filepath.Join(dir, "other.obj")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("v 0 0 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fw, err := NewFileWatcher(100*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	if err := fw.Watch([]string{path}, func(p string) {
		calls.Add(1)
		changed <- p
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("v 1 1 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// unwatched file in the same directory
	_ = os.WriteFile(other, []byte("v 2 2 2\n"), 0o644)

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("callback failed: expected %s, got %s", path, p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}

	time.Sleep(300 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("debounce failed: expected 1 callback, got %d", n)
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{path}, func(string) {}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := fw.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if len(fw.callbacks) != 0 {
		t.Errorf("RemoveAll failed: expected no callbacks, got %d", len(fw.callbacks))
	}
}
