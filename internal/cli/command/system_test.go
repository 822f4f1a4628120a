package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tabbi89/ConfigServiceProvider/internal/cli/output"
	"github.com/tabbi89/ConfigServiceProvider/internal/cli/repl"
	"github.com/tabbi89/ConfigServiceProvider/internal/infra/buildinfo"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/metric"
)

func TestVersion(t *testing.T) {
	res := runApp(t, nil, "-o", "json", "version")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	var info buildinfo.Info
	if err := json.Unmarshal([]byte(res.stdout), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", res.stdout, err)
	}
	if info.Version != buildinfo.Version || info.GoVersion == "" {
		t.Errorf("version = %+v", info)
	}
}

func TestShell(t *testing.T) {
	dir := fixtureDir(t)
	stdin := strings.NewReader("get db.driver\nkeys db2\nget db.nope fallback\nbogus\nexit\nget db.host\n")

	res := runApp(t, stdin, "--dir", dir, "shell", "--history-file", "")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	for _, want := range []string{
		repl.Prompt,
		"pdo_mysql\n",
		"db2.test\n",
		"fallback\n",
		`Error: unknown command "bogus"`,
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("shell output missing %q:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "localhost") {
		t.Error("shell kept reading after exit")
	}
}

func TestShell_History(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := fixtureDir(t)

	res := runAppInHome(t, strings.NewReader("keys\n"), "--dir", dir, "shell")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".confctl", "history"))
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if strings.TrimSpace(string(data)) != "keys" {
		t.Errorf("history = %q, want keys", data)
	}
}

func TestShell_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"broken.yml": "a: [\n"})

	res := runApp(t, strings.NewReader("keys\n"), "--dir", dir, "shell", "--history-file", "")
	if res.err == nil || !strings.Contains(res.err.Error(), "Invalid YAML provided") {
		t.Errorf("Run() error = %v, want a YAML parse error", res.err)
	}
}

func newTestEnv(t *testing.T, dir string) *Env {
	t.Helper()
	return &Env{
		Log:     logger.Discard(),
		Metrics: metric.NewRegistry(),
		Format:  output.FormatTable,
		dir:     dir,
	}
}

func TestShellExecutor(t *testing.T) {
	dir := fixtureDir(t)
	var buf bytes.Buffer
	exec := shellExecutor(newTestEnv(t, dir), &buf)

	tests := []struct {
		args    []string
		want    string
		wantErr string
	}{
		{args: []string{"get", "db.host"}, want: "localhost\n"},
		{args: []string{"get", "db.missing", "x"}, want: "x\n"},
		{args: []string{"get"}, wantErr: "usage: get"},
		{args: []string{"get", "a", "b", "c"}, wantErr: "usage: get"},
		{args: []string{"get", "db.missing"}, wantErr: ErrKeyNotFound.Error()},
		{args: []string{"keys", "db2"}, want: "db2.test\n"},
		{args: []string{"keys", "a", "b"}, wantErr: "usage: keys"},
		{args: []string{"dump", "db2"}, want: "db2.test"},
		{args: []string{"sources"}, want: "db2.json"},
		{args: []string{"check"}, wantErr: "usage: check"},
		{args: []string{"check", filepath.Join(dir, "db.yml")}, want: StatusOK},
		{args: []string{"extensions"}, want: ".toml"},
		{args: []string{"version"}, want: buildinfo.Version},
		{args: []string{"settings"}, wantErr: `unknown command "settings"`},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			buf.Reset()
			err := exec(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
