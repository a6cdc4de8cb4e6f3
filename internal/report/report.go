// Package report prints the timestamped status lines that are the tool's
// only user-facing output, and collects them into per-phase results.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"agent-workflow/internal/logging"
	"agent-workflow/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Severity classifies a status line.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// Symbol returns the glyph printed in front of a status line.
func (s Severity) Symbol() string {
	switch s {
	case Success:
		return "✓"
	case Warning:
		return "⚠"
	case Error:
		return "✗"
	default:
		return "ℹ"
	}
}

func (s Severity) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

// logLevel maps a severity onto the file log level.
func (s Severity) logLevel() logging.Level {
	switch s {
	case Warning:
		return logging.LevelWarn
	case Error:
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// Message is one reported status line.
type Message struct {
	Text     string
	Severity Severity
}

// CheckResult is the outcome of one checking phase.
type CheckResult struct {
	Passed   bool
	Messages []Message
}

// Count returns how many messages carry severity s.
func (c CheckResult) Count(s Severity) int {
	n := 0
	for _, m := range c.Messages {
		if m.Severity == s {
			n++
		}
	}
	return n
}

// HeaderWidth is the width of the "=" rules around a header.
const HeaderWidth = 60

// HeaderPrefix is prepended to every phase title.
const HeaderPrefix = "ESM Platform - "

// Reporter writes status lines to a console writer and mirrors them into
// the run log.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	log    *logging.Logger
	styles theme.Styles
	color  bool
	now    func() time.Time
}

// Option customises a Reporter.
type Option func(*Reporter)

// WithColor enables lipgloss styling of status lines.
func WithColor(on bool) Option { return func(r *Reporter) { r.color = on } }

// WithLogger mirrors every status line into l.
func WithLogger(l *logging.Logger) Option { return func(r *Reporter) { r.log = l } }

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option { return func(r *Reporter) { r.now = now } }

// New returns a Reporter writing to out. Color is off unless enabled.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:    out,
		styles: theme.DefaultStyles(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Styles returns the styles in use.
func (r *Reporter) Styles() theme.Styles { return r.styles }

// Color reports whether styling is enabled.
func (r *Reporter) Color() bool { return r.color }

// Header prints a phase banner:
//
//	============================================================
//	ESM Platform - <title>
//	============================================================
func (r *Reporter) Header(title string) {
	rule := strings.Repeat("=", HeaderWidth)
	text := HeaderPrefix + title
	r.log.Info("== %s ==", text)
	r.Println("")
	r.Println(r.render(r.styles.Rule, rule))
	r.Println(r.render(r.styles.Header, text))
	r.Println(r.render(r.styles.Rule, rule))
}

// Status prints "[HH:MM:SS] <symbol> <text>".
func (r *Reporter) Status(sev Severity, text string) {
	r.log.Log(sev.logLevel(), "%s %s", sev.Symbol(), text)

	ts := "[" + r.now().Format("15:04:05") + "]"
	line := r.render(r.styles.Timestamp, ts) + " " + r.render(r.severityStyle(sev), sev.Symbol()) + " " + text
	r.Println(line)
}

// Statusf is Status with fmt.Sprintf formatting.
func (r *Reporter) Statusf(sev Severity, format string, args ...any) {
	r.Status(sev, fmt.Sprintf(format, args...))
}

// Record prints a status line and appends it to res.
func (r *Reporter) Record(res *CheckResult, sev Severity, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	res.Messages = append(res.Messages, Message{Text: text, Severity: sev})
	r.Status(sev, text)
}

// Println writes one unformatted line.
func (r *Reporter) Println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

// Render applies style s when color is enabled and returns text unchanged
// otherwise.
func (r *Reporter) Render(s lipgloss.Style, text string) string {
	return r.render(s, text)
}

func (r *Reporter) render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Reporter) severityStyle(sev Severity) lipgloss.Style {
	switch sev {
	case Success:
		return r.styles.Success
	case Warning:
		return r.styles.Warning
	case Error:
		return r.styles.Error
	default:
		return r.styles.Info
	}
}
