package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleRecipe is a minimal recipe document with one compensated step.
const SampleRecipe = `{"category":"BW","expanded_title":"","steps":[` +
	`{"name":"DEV","time_min":8,"time_sec":0,"agitation":"Roll","compensation":"On","formula_designator":"1.1.1"},` +
	`{"name":"STOP","time_min":1,"time_sec":0},` +
	`{"name":"FIX","time_min":5,"time_sec":0}]}`

// WriteFile writes content to path, creating parent directories, and returns
// the path.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteRecipe writes SampleRecipe under dir with the given file name.
func WriteRecipe(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), SampleRecipe)
}
