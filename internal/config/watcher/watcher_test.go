package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("handler got %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easel.toml")
	if err := os.WriteFile(path, []byte("[canvas]\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	changed := make(chan string, 1)
	w, err := New(path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[canvas]\nwidth = 800.0\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	waitFor(t, changed, w.Path())
}

func TestWatcherDetectsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easel.toml")

	changed := make(chan string, 1)
	w, err := New(path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[canvas]\n"), 0o644); err != nil {
		t.Fatalf("creating file: %v", err)
	}

	waitFor(t, changed, w.Path())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easel.toml")

	changed := make(chan string, 1)
	w, err := New(path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing other file: %v", err)
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected event for %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easel.toml")

	w, err := New(path, func(string) {})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
