package command

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runResult captures one App.Run.
type runResult struct {
	stdout string
	stderr string
	err    error
}

// runApp runs confctl with args under a fresh HOME. stdin may be nil.
func runApp(t *testing.T, stdin io.Reader, args ...string) runResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return runAppInHome(t, stdin, args...)
}

// runAppInHome runs confctl without resetting HOME.
func runAppInHome(t *testing.T, stdin io.Reader, args ...string) runResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	app.Reader = stdin

	err := app.Run(append([]string{"confctl"}, args...))
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeFiles creates files under dir from name/content pairs.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// fixtureDir returns an autoload directory with two files.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"db.yml":     "db:\n  driver: pdo_mysql\n  host: localhost\n  password: hunter2\n",
		"db2.json":   `{"db2": {"test": "test2"}}`,
		"README.txt": "not configuration",
	})
	return dir
}
