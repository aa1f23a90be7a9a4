package storage

import (
	"bytes"
	"testing"
)

func testBackend(t *testing.T, open func(dir string) (Backend, error)) {
	t.Helper()
	dir := t.TempDir()

	b, err := open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if got, err := b.Load(KeySubjects); err != nil || got != nil {
		t.Fatalf("Load(absent) = %v, %v; want nil, nil", got, err)
	}

	payload := []byte(`{"version":1,"records":[]}`)
	if err := b.Store(KeySubjects, payload); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if got, err := b.Load(KeySubjects); err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("Load after Store = %q, %v", got, err)
	}

	// Overwrites replace the whole document.
	updated := []byte(`{"version":1,"records":[{"id":"a"}]}`)
	if err := b.Store(KeySubjects, updated); err != nil {
		t.Fatalf("Store (overwrite): %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Data survives reopening the same directory.
	b, err = open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	if got, err := b.Load(KeySubjects); err != nil || !bytes.Equal(got, updated) {
		t.Fatalf("Load after reopen = %q, %v", got, err)
	}
	if got, err := b.Load(KeyChapters); err != nil || got != nil {
		t.Fatalf("Load(other key) = %v, %v; want nil, nil", got, err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	testBackend(t, func(dir string) (Backend, error) { return OpenSQLite(dir) })
}

func TestBoltBackend(t *testing.T) {
	testBackend(t, func(dir string) (Backend, error) { return OpenBolt(dir) })
}

func TestOpenSelectsBackend(t *testing.T) {
	for _, name := range []string{"", "sqlite", "bolt"} {
		b, err := Open(name, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		b.Close()
	}

	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatal("Open with unknown backend should fail")
	}
}
