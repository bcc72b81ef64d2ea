package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// clearScreen moves the cursor home and clears the display.
const clearScreen = "\033[H\033[2J"

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ClearScreen clears w when it is a terminal and does nothing otherwise.
func ClearScreen(w io.Writer) {
	if IsTerminal(w) {
		fmt.Fprint(w, clearScreen)
	}
}

// PrintSuccess prints a green check mark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintPath prints a label and a cyan path, e.g. "Released v1.0.0 → .changelog/v1.0.0".
func PrintPath(out io.Writer, label, path string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s %s\n", label, color.New(color.Faint).Sprint("→"), cyan(path))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}
