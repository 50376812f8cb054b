package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Confirmer answers a yes/no question
type Confirmer func(question string) bool

// AlwaysYes confirms everything, for --yes and scripted runs
func AlwaysYes(string) bool { return true }

// AlwaysNo declines everything
func AlwaysNo(string) bool { return false }

// Scripted answers with the given responses in order and declines once they
// run out.
func Scripted(answers ...bool) Confirmer {
	i := 0
	return func(string) bool {
		if i >= len(answers) {
			return false
		}
		a := answers[i]
		i++
		return a
	}
}

// Interactive asks on the terminal with a huh confirm field, or falls back to
// a line prompt on out when in is not a terminal.
func Interactive(in *os.File, out io.Writer) Confirmer {
	if term.IsTerminal(int(in.Fd())) {
		return func(question string) bool {
			var ok bool
			err := huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok).
				Run()
			return err == nil && ok
		}
	}
	return LinePrompt(in, out)
}

// LinePrompt reads yes/y/ye or no/n answers line by line, asking again on
// anything else. End of input declines.
func LinePrompt(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return func(question string) bool {
		for {
			fmt.Fprintf(out, "%s [y/n] ", question)
			line, err := reader.ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "yes", "y", "ye":
				return true
			case "no", "n":
				return false
			}
			if err != nil {
				fmt.Fprintln(out)
				return false
			}
			fmt.Fprintln(out, "Please respond with 'yes' or 'no' (or 'y' or 'n').")
		}
	}
}
