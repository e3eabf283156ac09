package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/rollforge/roll-api/internal/dicelang"
)

const replPrompt = "roll> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive roll session",
	Long: `Start an interactive session. Enter dice expressions to roll them.

Session commands:
  @name = value    bind a variable for later expressions
  vars             list current bindings
  exit, quit       leave the session`,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	line := liner.NewLiner()
	defer func() {
		if err := line.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to close line editor: %v\n", err)
		}
	}()

	line.SetCtrlCAborts(true)

	historyFile := filepath.Join(os.TempDir(), ".roll_api_history")
	if f, err := os.Open(historyFile); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to read history: %v\n", err)
		}
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to write history: %v\n", err)
			}
			_ = f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "roll-api interactive session")
	fmt.Fprintln(out, "Type an expression to roll it, 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "")

	variables := map[string]int{}

	for {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "")
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case trimmed == "exit" || trimmed == "quit":
			return nil
		case trimmed == "vars":
			printVariables(out, variables)
		default:
			if name, value, ok := parseBinding(trimmed); ok {
				variables[name] = value
				continue
			}
			result, err := dicelang.Roll(trimmed, variables)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, dicelang.FormatRollForDisplay(result, ""))
		}
	}
}

// parseBinding recognizes "@name = value" session assignments. Input
// starting with "@" only counts as a binding when the right side of the
// first "=" is an integer; anything else is rolled as an expression, so
// comparators like "==" stay usable on variables.
func parseBinding(input string) (string, int, bool) {
	if !strings.HasPrefix(input, "@") {
		return "", 0, false
	}
	name, valueStr, found := strings.Cut(input, "=")
	if !found {
		return "", 0, false
	}
	name = strings.TrimSpace(strings.TrimPrefix(name, "@"))
	if !isIdentifier(name) {
		return "", 0, false
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return "", 0, false
	}
	return name, value, true
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		switch {
		case ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
		case i > 0 && ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return true
}

func printVariables(out io.Writer, variables map[string]int) {
	if len(variables) == 0 {
		fmt.Fprintln(out, "no variables bound")
		return
	}
	for name, value := range variables {
		fmt.Fprintf(out, "@%s = %d\n", name, value)
	}
}
