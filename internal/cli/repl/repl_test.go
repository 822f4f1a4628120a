package repl

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// newTestREPL returns a REPL reading input and recording executed lines.
func newTestREPL(input string, exec Executor) (*REPL, *bytes.Buffer) {
	output := &bytes.Buffer{}
	r := &REPL{
		input:     strings.NewReader(input),
		output:    output,
		completer: NewCompleter([]string{"get", "keys", "dump"}, func() []string { return []string{"db.host", "db.port"} }),
		history:   NewHistory(""),
		exec:      exec,
	}
	return r, output
}

func TestNew(t *testing.T) {
	r := New(nil, []string{"get"}, nil)
	if r == nil {
		t.Fatal("New returned nil")
	}
	if r.completer == nil {
		t.Error("completer should be initialized")
	}
	if r.history == nil {
		t.Error("history should be initialized")
	}
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""}, // No newline, simulates Ctrl+D
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestREPL(tt.input, func([]string) error {
				t.Error("executor should not run")
				return nil
			})
			if err := r.Run(); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
		})
	}
}

func TestREPL_Run_Executes(t *testing.T) {
	var got [][]string
	r, output := newTestREPL("\n\nget db.host\nkeys 'db'\nexit\nget never\n", func(args []string) error {
		got = append(got, args)
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := [][]string{{"get", "db.host"}, {"keys", "db"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("executed %v, want %v", got, want)
	}
	if n := strings.Count(output.String(), Prompt); n != 5 {
		t.Errorf("prompt printed %d times, want 5", n)
	}
	if r.history.Len() != 3 {
		t.Errorf("history has %d entries, want 3", r.history.Len())
	}
}

func TestREPL_Run_LastLineWithoutNewline(t *testing.T) {
	var got []string
	r, _ := newTestREPL("get db.port", func(args []string) error {
		got = args
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"get", "db.port"}) {
		t.Errorf("executed %v, want [get db.port]", got)
	}
}

func TestREPL_Run_ErrorsAreReported(t *testing.T) {
	r, output := newTestREPL("get missing\nget \"open\nexit\n", func([]string) error {
		return errors.New("key not found")
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output.String(), "Error: key not found") {
		t.Errorf("output missing executor error:\n%s", output.String())
	}
	if !strings.Contains(output.String(), "Error: unterminated quote") {
		t.Errorf("output missing split error:\n%s", output.String())
	}
}

func TestREPL_Builtins(t *testing.T) {
	r, output := newTestREPL("help\ncomplete get db.p\ncomplete k\nhistory\nexit\n", func([]string) error {
		t.Error("builtins should not reach the executor")
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := output.String()
	for _, want := range []string{"Commands:", "  dump", "get db.port", "keys", "   1  help"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_NoExecutor(t *testing.T) {
	r, output := newTestREPL("get x\nexit\n", nil)
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output.String(), `Error: unknown command "get"`) {
		t.Errorf("output = %s", output.String())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"get db.host", []string{"get", "db.host"}, false},
		{"  get   db.host  ", []string{"get", "db.host"}, false},
		{`get db.host "a default"`, []string{"get", "db.host", "a default"}, false},
		{`get 'it''s'`, []string{"get", "its"}, false},
		{`get a\ b`, []string{"get", "a b"}, false},
		{`get ""`, []string{"get", ""}, false},
		{`get "open`, nil, true},
		{`get trailing\`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Split(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Split() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}
