package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestLocalEvidenceStore_Store(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalEvidenceStore(dir, "/uploads", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewLocalEvidenceStore returned error: %v", err)
	}

	url, err := store.Store(context.Background(), "student-ids/sid-123.jpg", []byte("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	if url != "/uploads/student-ids/sid-123.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "student-ids", "sid-123.jpg"))
	if err != nil {
		t.Fatalf("expected evidence file on disk: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestLocalEvidenceStore_NilLogger(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalEvidenceStore(dir, "/uploads", nil)
	if err != nil {
		t.Fatalf("NewLocalEvidenceStore returned error: %v", err)
	}

	if _, err := store.Store(context.Background(), "student-ids/sid-456.jpg", []byte("x"), "image/jpeg"); err != nil {
		t.Fatalf("Store with nil logger returned error: %v", err)
	}
}

func TestLocalEvidenceStore_NeutralizesTraversal(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalEvidenceStore(dir, "/uploads", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewLocalEvidenceStore returned error: %v", err)
	}

	url, err := store.Store(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if url != "/uploads/escape.jpg" {
		t.Fatalf("expected traversal components stripped, got %s", url)
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.jpg")); err != nil {
		t.Fatalf("expected file inside base directory: %v", err)
	}

	if _, err := store.Store(context.Background(), "..", []byte("x"), "image/jpeg"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
