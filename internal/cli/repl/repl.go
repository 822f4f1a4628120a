package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt is printed before every line.
const Prompt = "confctl> "

// ErrUnterminatedQuote is returned by Split for a line with an open quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Executor runs one command line, already split into arguments.
type Executor func(args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
	exec      Executor
}

// New creates a REPL on stdin and stdout. keys supplies configuration keys
// for completion and may be nil.
func New(exec Executor, commands []string, keys func() []string) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(commands, keys),
		history:   NewHistory(DefaultHistoryPath()),
		exec:      exec,
	}
}

// SetIO replaces the input and output streams.
func (r *REPL) SetIO(in io.Reader, out io.Writer) {
	r.input = in
	r.output = out
}

// SetHistory replaces the history store.
func (r *REPL) SetHistory(h *History) {
	r.history = h
}

// Run starts the REPL loop. It returns when the input ends or on exit.
// History is loaded before the first prompt and saved on return.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: history not loaded: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: history not saved: %v\n", err)
		}
	}()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, Prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		// Trim and skip empty lines
		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
		if eof {
			return nil
		}
	}
}

func (r *REPL) execute(line string) error {
	args, err := Split(line)
	if err != nil {
		return err
	}

	switch args[0] {
	case "help":
		r.printHelp()
		return nil
	case "history":
		for i := r.history.Len() - 1; i >= 0; i-- {
			fmt.Fprintf(r.output, "%4d  %s\n", r.history.Len()-i, r.history.Get(i))
		}
		return nil
	case "complete":
		prefix := strings.TrimSpace(strings.TrimPrefix(line, "complete"))
		for _, s := range r.completer.Complete(prefix) {
			fmt.Fprintln(r.output, s)
		}
		return nil
	}

	if r.exec == nil {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return r.exec(args)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
	fmt.Fprintln(r.output, "Built-ins: help, history, complete PREFIX, exit, quit")
}

// Split breaks a line into arguments on whitespace. Single and double
// quotes group words; a backslash escapes the next character outside
// single quotes.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
