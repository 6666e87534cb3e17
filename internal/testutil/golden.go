package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GoldenDir is where golden files live, relative to the test's package.
const GoldenDir = "testdata"

// Golden compares output against testdata/<name>.golden.
// If the GOLDEN_UPDATE environment variable is set, the file is rewritten instead.
// CRLF line endings in the golden file are ignored.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join(GoldenDir, name+".golden")

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll(GoldenDir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", GoldenDir, err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", path, err, got)
	}
	want = bytes.ReplaceAll(want, []byte("\r\n"), []byte("\n"))

	if !bytes.Equal(got, want) {
		line, w, g := firstDiff(string(want), string(got))
		t.Errorf("output mismatch for %s at line %d\nwant: %q\ngot:  %q\n\nGot:\n%s", name, line, w, g, got)
	}
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

// firstDiff returns the 1-based number of the first differing line and both versions of it.
func firstDiff(want, got string) (int, string, string) {
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return i + 1, w, g
		}
	}
	return 0, "", ""
}
