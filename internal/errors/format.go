package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// ANSI escape sequences used by Format.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

// wrapWidth is the column at which Format wraps explanations.
const wrapWidth = 70

var plain atomic.Bool

// DisableColors makes Format and PrintError emit plain text.
func DisableColors() { plain.Store(true) }

// EnableColors restores ANSI colors.
func EnableColors() { plain.Store(false) }

func paint(text string, codes ...string) string {
	if plain.Load() || text == "" {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal: a headline, the occurrence
// detail and registered explanation wrapped to 70 columns, then the cause,
// hint and documentation link when present.
func (e *GraphError) Format() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(e.headline())
	b.WriteString("\n\n")

	for _, para := range []string{e.Detail, e.explanation()} {
		if para == "" {
			continue
		}
		for _, line := range wrapText(para, wrapWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	labelled := []struct{ label, text, color string }{
		{"Caused by: ", errorText(e.Wrapped), ansiGray},
		{"Hint: ", e.Suggestion, ansiCyan},
		{"Learn more: ", e.DocURL, ansiGray},
	}
	for _, l := range labelled {
		if l.text == "" {
			continue
		}
		text := l.text
		if l.label == "Learn more: " {
			text = paint(text, ansiBlue)
		}
		fmt.Fprintf(&b, "  %s%s\n", paint(l.label, l.color), text)
	}
	return b.String()
}

func (e *GraphError) headline() string {
	if e.Code == "" {
		return paint("ERROR: ", ansiRed, ansiBold) + e.Message
	}
	return paint("ERROR ", ansiRed, ansiBold) + paint(e.Code+": ", ansiBold) + e.Message
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// explanation returns the registered explanation for the code.
func (e *GraphError) explanation() string {
	return registry[e.Code].Detail
}

// FormatCompact returns "CODE: message: detail" on one line.
func (e *GraphError) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ": ")
}

type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	DocURL     string   `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *GraphError) FormatJSON() string {
	data, err := json.Marshal(jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	})
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText greedily breaks text into lines of at most width columns. A
// single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return lines
}

// PrintError writes err to stderr, formatted if it is a *GraphError.
func PrintError(err error) {
	fprintError(os.Stderr, err)
}

func fprintError(w io.Writer, err error) {
	if ge, ok := err.(*GraphError); ok {
		fmt.Fprint(w, ge.Format())
		return
	}
	fmt.Fprintf(w, "\n%s%s\n\n", paint("ERROR: ", ansiRed, ansiBold), err)
}
