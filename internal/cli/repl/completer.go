package repl

import (
	"slices"
	"strings"
)

// Completer provides completion for the REPL: command names for the first
// word, configuration keys for the words after it.
type Completer struct {
	commands []string
	keys     func() []string
}

// NewCompleter creates a Completer. keys may be nil.
func NewCompleter(commands []string, keys func() []string) *Completer {
	cmds := append(slices.Clone(commands), "help", "history", "exit", "quit")
	slices.Sort(cmds)
	return &Completer{
		commands: slices.Compact(cmds),
		keys:     keys,
	}
}

// Commands returns the known command names, sorted.
func (c *Completer) Commands() []string {
	return slices.Clone(c.commands)
}

// Complete returns whole-line suggestions for the given partial line.
func (c *Completer) Complete(line string) []string {
	head, last, hasArgs := cutLast(line)
	if !hasArgs {
		return matching(c.commands, last, "")
	}
	if c.keys == nil {
		return nil
	}
	return matching(c.keys(), last, head)
}

// cutLast splits line before its last word.
func cutLast(line string) (head, last string, hasArgs bool) {
	i := strings.LastIndexAny(line, " \t")
	if i < 0 {
		return "", line, false
	}
	return line[:i+1], line[i+1:], true
}

func matching(candidates []string, prefix, head string) []string {
	var suggestions []string
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			suggestions = append(suggestions, head+cand)
		}
	}
	return suggestions
}
