package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileSpec describes a file written into a temporary workspace.
type FileSpec struct {
	// Path is slash-separated and relative to the workspace root.
	Path    string
	Content string
	// NotExist only creates the parent directory.
	NotExist bool
}

// MustPrepareTestFiles writes files into a fresh temporary directory that
// is removed when the test ends.
func MustPrepareTestFiles(t *testing.T, files []FileSpec) (tmpDir string, filenames []string) {
	t.Helper()
	tmpDir = t.TempDir()
	filenames = MustWriteTestFiles(t, tmpDir, files)
	return tmpDir, filenames
}

func MustWriteTestFiles(t *testing.T, tmpDir string, files []FileSpec) []string {
	t.Helper()
	var filenames []string
	for _, file := range files {
		abs := filepath.Join(tmpDir, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(abs), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if !file.NotExist {
			if err := os.WriteFile(abs, []byte(file.Content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		ListFiles(t, dir)
		t.Fatal("reading", filename, ":", err)
	}
	return string(data)
}

// EqualError reports whether errors a and b are considered equal.
// They're equal if both are nil, or both are not nil and a.Error() == b.Error().
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// ExpectError asserts that the errors are equal.  Return value is true
// if the "want" argument is non-nil.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if !EqualError(want, got) {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}

// ListFiles is a convenience debugging function to log the files under a given dir.
func ListFiles(t *testing.T, dir string) {
	t.Log("Listing files under:", dir)
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		t.Log(path)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}
