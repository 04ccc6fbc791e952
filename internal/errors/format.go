package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

// colors is false when NO_COLOR is set or after DisableColors.
var colors = os.Getenv("NO_COLOR") == ""

// DisableColors turns off ANSI escapes in Format.
func DisableColors() { colors = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colors = true }

func paint(style, text string) string {
	if !colors || text == "" {
		return text
	}
	return style + text + ansiReset
}

// Format renders the error for a terminal.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	head := "ERROR"
	if e.Code != "" {
		head += " " + e.Code
	}
	fmt.Fprintf(&b, "%s %s\n\n", paint(ansiBold+ansiRed, head+":"), paint(ansiBold, e.Message))

	if s := e.Site.String(); s != "" {
		fmt.Fprintf(&b, "  %s\n\n", paint(ansiCyan, s))
	}
	if e.Detail != "" {
		writeWrapped(&b, e.Detail, "  ")
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		writeWrapped(&b, paint(ansiGray, "Cause:")+" "+e.Wrapped.Error(), "  ")
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", paint(ansiCyan, "Hint:"), e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint(ansiGray, "Docs:"), e.DocURL)
	}
	return b.String()
}

// FormatCompact renders the error on one line, site first.
func (e *Error) FormatCompact() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if s := e.Site.String(); s != "" {
		msg = s + ": " + msg
	}
	return msg
}

// writeWrapped writes text one line at a time, wrapping paragraphs at 72
// columns.
func writeWrapped(w io.Writer, text, indent string) {
	const width = 72
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && len(line)+1+len(word) > width {
				fmt.Fprintf(w, "%s%s\n", indent, line)
				line = ""
			}
			if line != "" {
				line += " "
			}
			line += word
		}
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

// PrintError prints err to stderr, formatted when it is an *Error.
func PrintError(err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(os.Stderr, e.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint(ansiBold+ansiRed, "ERROR:"), err)
}
