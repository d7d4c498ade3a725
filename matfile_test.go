package mat73

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenRejectsNonHDF5File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-mat-file.mat")
	if err := os.WriteFile(path, []byte("this is not HDF5"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatalf("expected an error opening a non-HDF5 file")
	}
	if !errors.Is(err, ErrNotHDF5) {
		t.Fatalf("err = %v, want it to wrap ErrNotHDF5", err)
	}
}

func TestOpenRejectsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.mat"))
	if err == nil {
		t.Fatalf("expected an error opening a missing file")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("err = %v, want it to wrap ErrFileNotFound", err)
	}
	if errors.Is(err, ErrNotHDF5) {
		t.Fatalf("a missing file must not be reported as ErrNotHDF5")
	}
}
