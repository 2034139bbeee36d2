package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sketch.txt")
	if err := os.WriteFile(file, []byte("drag 0,0 100,0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw, err := NewFileWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 4)
	if err := fw.Watch([]string{file}, func(path string) { changed <- path }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if err := os.WriteFile(file, []byte("drag 0,0 200,0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	abs, _ := filepath.Abs(file)
	select {
	case got := <-changed:
		if got != abs {
			t.Errorf("expected %s, got %s", abs, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sketch.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw, err := NewFileWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 4)
	if err := fw.Watch([]string{file}, func(path string) { changed <- path }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case got := <-changed:
		t.Errorf("expected no notification, got %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sketch.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw, err := NewFileWatcher(DefaultDebounce)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{file}, func(string) {}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := fw.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if len(fw.callbacks) != 0 || len(fw.dirs) != 0 {
		t.Errorf("expected no watched files after RemoveAll")
	}
}
