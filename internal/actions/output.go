package actions

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Emitter writes run outputs and workflow commands for the surrounding
// automation. Outside a runner (no GITHUB_OUTPUT and so on) everything
// degrades to plain stdout, which keeps local runs harmless.
type Emitter struct {
	logger *slog.Logger
	stdout io.Writer
}

// NewEmitter creates an Emitter. A nil stdout selects os.Stdout.
func NewEmitter(logger *slog.Logger, stdout io.Writer) *Emitter {
	if logger == nil {
		panic("actions: logger must not be nil")
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Emitter{logger: logger, stdout: stdout}
}

// SetOutput publishes one key=value run output. Values must be single-line;
// callers escape multiline content with EscapeValue first. The GITHUB_OUTPUT
// file is preferred, the legacy ::set-output command is the fallback.
func (e *Emitter) SetOutput(key, value string) {
	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			e.logger.Warn("failed to open GITHUB_OUTPUT, falling back to set-output", "error", err)
		} else {
			defer f.Close()
			if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
				e.logger.Warn("failed to write run output", "key", key, "error", err)
			}
			return
		}
	}
	fmt.Fprintf(e.stdout, "::set-output name=%s::%s\n", key, commandEscape(value))
}

// Warning emits an advisory warning annotation.
func (e *Emitter) Warning(msg string) {
	fmt.Fprintf(e.stdout, "::warning::%s\n", commandEscape(msg))
}

// Notice emits an advisory notice annotation.
func (e *Emitter) Notice(msg string) {
	fmt.Fprintf(e.stdout, "::notice::%s\n", commandEscape(msg))
}

// StepSummary appends Markdown to the job's step summary when the runner
// provides one; otherwise it is dropped silently.
func (e *Emitter) StepSummary(markdown string) {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		e.logger.Warn("failed to open GITHUB_STEP_SUMMARY", "error", err)
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\n", markdown); err != nil {
		e.logger.Warn("failed to write step summary", "error", err)
	}
}

// EscapeValue collapses a multiline value into a single line with
// backslash, newline, carriage-return, and double-quote characters escaped,
// the form consumers of the comment output expect.
func EscapeValue(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
		`"`, `\"`,
	).Replace(s)
}

// commandEscape applies workflow-command data escaping.
func commandEscape(s string) string {
	return strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	).Replace(s)
}
