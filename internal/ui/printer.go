// Package ui renders chat output. The rest of the program only picks a
// semantic category (app, chatbot, error, prompt); all styling lives here.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	chatbotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)
)

// Printer writes categorized output to a single writer.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// App prints an application status line.
func (p *Printer) App(msg string) {
	fmt.Fprintln(p.out, msg)
}

// ChatbotPrefix prints the chatbot name prefix, without a newline, ahead
// of a streamed reply.
func (p *Printer) ChatbotPrefix(name string) {
	fmt.Fprint(p.out, chatbotStyle.Render(name+":")+" ")
}

// Text prints a raw response fragment as it arrives.
func (p *Printer) Text(s string) {
	fmt.Fprint(p.out, s)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, errorStyle.Render("Error:")+" "+msg)
}

// Prompt returns the styled user input prompt.
func (p *Printer) Prompt() string {
	return promptStyle.Render("You:") + " "
}
