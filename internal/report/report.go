// Package report renders locale check results for humans (text) or tools (JSON).
package report

import (
	"fmt"
	"io"
	"strings"

	"localecheck/internal/checker"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/muesli/termenv"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: %v)", s, Formats)
}

const (
	summaryComplete   = "🎉 All locale files are now complete!"
	summaryIncomplete = "❌ Some locale files still have missing keys."
)

// Options controls rendering.
type Options struct {
	Format    Format
	ShowExtra bool
	NoColor   bool
}

// Writer renders results to an output stream.
type Writer struct {
	out  io.Writer
	opts Options

	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// NewWriter creates a Writer. Colors are only emitted when out is a color-capable
// terminal and NoColor is unset.
func NewWriter(out io.Writer, opts Options) *Writer {
	if opts.Format == "" {
		opts.Format = FormatText
	}

	r := lipgloss.NewRenderer(out)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Writer{
		out:   out,
		opts:  opts,
		ok:    r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#2196F3")),
	}
}

// Write renders res.
func (w *Writer) Write(res *checker.Result) error {
	switch w.opts.Format {
	case FormatJSON:
		return w.writeJSON(res)
	default:
		return w.writeText(res)
	}
}

// Only the fixed labels are styled; file names and keys are written verbatim so the
// plain-text output stays byte-identical across runs.
func (w *Writer) writeText(res *checker.Result) error {
	var b strings.Builder

	for _, rep := range res.Reports {
		switch rep.Status {
		case checker.StatusMissingKeys:
			fmt.Fprintf(&b, "%s %s\n", rep.File, w.warn.Render("still missing keys:"))
			for _, key := range rep.Missing {
				fmt.Fprintf(&b, "  %s\n", key)
			}
		case checker.StatusComplete:
			fmt.Fprintf(&b, "%s %s\n", rep.File, w.ok.Render("✓ Complete"))
		case checker.StatusReadError:
			fmt.Fprintf(&b, "%s %s: %v\n", w.fail.Render("Error reading"), rep.File, rep.Err)
		}

		if w.opts.ShowExtra && len(rep.Extra) > 0 {
			fmt.Fprintf(&b, "%s %s %s:\n", rep.File, w.muted.Render("has keys not in"), res.Reference)
			for _, key := range rep.Extra {
				fmt.Fprintf(&b, "  %s\n", key)
			}
		}
	}

	b.WriteString("\n")
	if res.Complete() {
		b.WriteString(w.ok.Render(summaryComplete))
	} else {
		b.WriteString(w.fail.Render(summaryIncomplete))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w.out, b.String())
	return err
}

type jsonLocale struct {
	File    string   `json:"file"`
	Status  string   `json:"status"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type jsonReport struct {
	Reference string       `json:"reference"`
	Keys      int          `json:"keys"`
	Complete  bool         `json:"complete"`
	Locales   []jsonLocale `json:"locales"`
}

func (w *Writer) writeJSON(res *checker.Result) error {
	doc := jsonReport{
		Reference: res.Reference,
		Keys:      res.ReferenceLen,
		Complete:  res.Complete(),
		Locales:   make([]jsonLocale, 0, len(res.Reports)),
	}
	for _, rep := range res.Reports {
		loc := jsonLocale{
			File:    rep.File,
			Status:  string(rep.Status),
			Missing: rep.Missing,
		}
		if loc.Missing == nil {
			loc.Missing = []string{}
		}
		if w.opts.ShowExtra {
			loc.Extra = rep.Extra
		}
		if rep.Err != nil {
			loc.Error = rep.Err.Error()
		}
		doc.Locales = append(doc.Locales, loc)
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
