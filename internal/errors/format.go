package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles each part of a formatted error. The plain palette leaves
// text untouched.
type palette struct {
	label, message, category, usage, usageText, fix, bullet func(a ...interface{}) string
}

var (
	colorPalette = palette{
		label:     color.New(color.FgRed, color.Bold).SprintFunc(),
		message:   color.New(color.FgRed).SprintFunc(),
		category:  color.New(color.FgYellow).SprintFunc(),
		usage:     color.New(color.FgCyan, color.Bold).SprintFunc(),
		usageText: color.New(color.FgCyan).SprintFunc(),
		fix:       color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:    color.New(color.FgGreen).SprintFunc(),
	}
	plainPalette = palette{
		label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint,
		usage: fmt.Sprint, usageText: fmt.Sprint, fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

func paletteFor(useColors bool) palette {
	if useColors {
		return colorPalette
	}
	return plainPalette
}

// FormatError renders err with its category, usage and remediation, in
// color when the terminal supports it.
func FormatError(err *CLIError) string {
	return formatError(err, !color.NoColor)
}

// FormatErrorPlain is FormatError without colors.
func FormatErrorPlain(err *CLIError) string {
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}
	p := paletteFor(useColors)
	return fmt.Sprintf("%s [%s]: %s\n%s",
		p.label("Error"), p.category(err.Category.String()), p.message(err.Message),
		formatHints(err, p))
}

// FormatHints renders only the usage and remediation of err. The CLI prints
// this after logging the failure itself.
func FormatHints(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatHints(err, paletteFor(!color.NoColor))
}

func formatHints(err *CLIError, p palette) string {
	var sb strings.Builder
	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usage("Usage: "), p.usageText(err.Usage))
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	fmt.Fprint(w, FormatError(err))
}
