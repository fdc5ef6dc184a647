//nolint:gochecknoglobals
package backend

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for console rendering.
var (
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	siteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	causeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	traceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// levelStyle returns the style for a record at level.
func levelStyle(level Level) lipgloss.Style {
	switch {
	case level >= LevelError:
		return errorStyle
	case level >= LevelWarn:
		return warnStyle
	case level >= LevelInfo:
		return infoStyle
	case level >= LevelDebug:
		return debugStyle
	default:
		return traceStyle
	}
}

// Console writes styled human-readable lines to a terminal or buffer.
// The default configuration is [DefaultLevel], millisecond timestamps,
// styling enabled, and call sites disabled.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	cfg config
}

// NewConsole creates a console sink that writes to the specified
// writer. A nil writer discards all records.
func NewConsole(w io.Writer, opts ...Option) *Console {
	if w == nil {
		w = io.Discard
	}

	cfg := makeConfig(opts...)
	if cfg.formatTime == nil {
		cfg.formatTime = makeFormatTimeFunc("stampmilli")
	}

	return &Console{w: w, cfg: cfg}
}

// Name identifies the sink in error reports.
func (c *Console) Name() string {
	if c.cfg.name != "" {
		return c.cfg.name
	}

	return "console"
}

// Enabled reports whether the sink accepts records at level.
func (c *Console) Enabled(level Level) bool { return level >= c.cfg.level }

// Log renders one record as a single line, with the cause on an
// indented continuation line, and writes it atomically.
func (c *Console) Log(r *Record) error {
	line := c.render(r)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, line); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("backend", c.Name()))
	}

	return nil
}

func (c *Console) render(r *Record) string {
	var b strings.Builder

	if ts := c.cfg.formatTime(r.Time); ts != "" {
		b.WriteString(c.paint(timeStyle, ts))
		b.WriteByte(' ')
	}

	level := fmt.Sprintf("%-5s", strings.ToUpper(r.Level.String()))
	b.WriteString(c.paint(levelStyle(r.Level), level))
	b.WriteByte(' ')

	if c.cfg.caller && r.Site.Valid() {
		b.WriteString(c.paint(siteStyle, r.Site.String()))
		b.WriteByte(' ')
	}

	b.WriteString(r.Message())

	if suffix := c.cfg.formatter.FormatContext(r); suffix != "" {
		b.WriteString(c.paint(contextStyle, suffix))
	}

	if cause := r.Cause(); cause != nil {
		b.WriteString("\n  ")
		b.WriteString(c.paint(causeStyle, "cause: "+cause.Error()))
	}

	b.WriteByte('\n')

	return b.String()
}

// paint applies style to s when styling is enabled.
func (c *Console) paint(style lipgloss.Style, s string) string {
	if !c.cfg.color {
		return s
	}

	return style.Render(s)
}
