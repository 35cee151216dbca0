package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowTimestamp bool
	ShowDetails   bool
	UseColor      bool
}

// TextWriter writes alerts as lines of text.
type TextWriter struct {
	writer io.Writer
	config WriterConfig
}

// NewTextWriter creates a TextWriter. Color is enabled when w is a terminal
// and noColor is false.
func NewTextWriter(w io.Writer, noColor bool) *TextWriter {
	return &TextWriter{
		writer: w,
		config: WriterConfig{
			ShowDetails: true,
			UseColor:    !noColor && isTerminal(w),
		},
	}
}

// WithConfig sets the writer configuration.
func (tw *TextWriter) WithConfig(config WriterConfig) *TextWriter {
	tw.config = config
	return tw
}

// WriteAlert writes one alert followed by its details, indented.
func (tw *TextWriter) WriteAlert(alert *Alert) error {
	line := alert.String()
	if tw.config.ShowTimestamp {
		line = alert.Timestamp.Format("15:04:05") + " " + line
	}
	if tw.config.UseColor {
		line = alert.Level.Color() + line + resetColor
	}
	if _, err := fmt.Fprintln(tw.writer, line); err != nil {
		return err
	}
	if !tw.config.ShowDetails {
		return nil
	}
	for _, d := range alert.Details {
		if _, err := fmt.Fprintf(tw.writer, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
