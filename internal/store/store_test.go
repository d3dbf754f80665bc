package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, namespace string) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, namespace)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestOpenRejectsEmptyNamespace(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "x.db"), ""); err == nil {
		t.Fatal("expected error for empty namespace")
	}
}

func TestGetMissingKey(t *testing.T) {
	s, _ := openTestStore(t, "ns")
	_, err := s.Get("absent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetCommitGetRoundTrip(t *testing.T) {
	s, _ := openTestStore(t, "ns")
	value := []byte{0x01, 0x02, 0x00, 0xFF}

	if err := s.Set("blob", value); err != nil {
		t.Fatal(err)
	}

	// Visible before commit (staged)
	got, err := s.Get("blob")
	if err != nil {
		t.Fatalf("Get staged: %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("staged value: got %v, want %v", got, value)
	}

	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err = s.Get("blob")
	if err != nil {
		t.Fatalf("Get committed: %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("committed value: got %v, want %v", got, value)
	}
}

func TestCommitSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	s, err := Open(dbPath, "ns")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []byte("durable")); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(dbPath, "ns")
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "durable" {
		t.Errorf("got %q", got)
	}
}

func TestUncommittedWritesAreDroppedOnClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "drop.db")
	s, err := Open(dbPath, "ns")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []byte("ephemeral")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(dbPath, "ns")
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	if _, err := s2.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("uncommitted write survived: %v", err)
	}
}

func TestCommitOverwrites(t *testing.T) {
	s, _ := openTestStore(t, "ns")

	for _, v := range []string{"first", "second"} {
		if err := s.Set("k", []byte(v)); err != nil {
			t.Fatal(err)
		}
		if err := s.Commit(); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestNamespaceIsolation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")
	a, err := Open(dbPath, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := Open(dbPath, "beta")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if err := a.Set("k", []byte("from-alpha")); err != nil {
		t.Fatal(err)
	}
	if err := a.Commit(); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("namespace leak: %v", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t, "ns")

	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("key survived delete: %v", err)
	}

	// Delete also drops a staged write
	if err := s.Set("k2", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("k2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("staged write survived delete: %v", err)
	}
}

func TestSetRejectsEmptyKey(t *testing.T) {
	s, _ := openTestStore(t, "ns")
	if err := s.Set("", []byte("v")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestSetCopiesValue(t *testing.T) {
	s, _ := openTestStore(t, "ns")

	buf := []byte("original")
	if err := s.Set("k", buf); err != nil {
		t.Fatal(err)
	}
	copy(buf, "scribble")

	got, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Errorf("caller mutation leaked into store: %q", got)
	}
}
