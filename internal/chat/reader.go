package chat

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrInterrupted reports that the user aborted at the input prompt.
// Interrupts are only honored here, at the read suspension point, never
// mid-stream.
var ErrInterrupted = errors.New("interrupted")

// LineReader is the engine's input source. Implementations return io.EOF
// when input is exhausted and ErrInterrupted on a prompt abort.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// TerminalReader reads lines interactively with line editing and history
// navigation, persisting history across runs.
type TerminalReader struct {
	line        *liner.State
	historyFile string
}

// NewTerminalReader creates an interactive reader. historyFile may be
// empty to disable persistent history.
func NewTerminalReader(historyFile string) *TerminalReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &TerminalReader{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			r.line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

// ReadLine prompts for one line of input. Non-blank lines are appended to
// the history.
func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", ErrInterrupted
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (r *TerminalReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
	return nil
}

// PipeReader reads lines from a non-interactive source. No prompt is
// written and no history is kept.
type PipeReader struct {
	scanner *bufio.Scanner
}

// NewPipeReader creates a reader over in.
func NewPipeReader(in io.Reader) *PipeReader {
	return &PipeReader{scanner: bufio.NewScanner(in)}
}

// ReadLine returns the next line, or io.EOF when the source is drained.
func (r *PipeReader) ReadLine(_ string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// Close is a no-op for piped input.
func (r *PipeReader) Close() error {
	return nil
}
