package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strait/internal/diag"
	"strait/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(&d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) printDiagnostic(d *diag.Diagnostic) {
	head := fmt.Sprintf("%s %s", d.Severity.String(), d.Code.ID())
	if p.opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(p.w, "%s: %s: %s\n", p.location(d.Primary), head, p.clip(d.Message))

	if p.opts.ShowSource {
		p.printSource(d.Primary)
	}
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := "note"
		if p.opts.Color {
			label = noteColor.Sprint(label)
		}
		fmt.Fprintf(p.w, "%s: %s: %s\n", p.location(n.Span), label, p.clip(n.Msg))
		if p.opts.ShowSource && n.Span != d.Primary {
			p.printSource(n.Span)
		}
	}
}

// printSource печатает строку с ошибкой и подчёркивание под Span.
// Ширина подчёркивания считается в экранных колонках, не в байтах.
func (p *prettyPrinter) printSource(span source.Span) {
	f := p.fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := p.fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	before := sliceCols(line, 1, start.Col)
	marked := line[len(before):]
	if start.Line == end.Line && end.Col > start.Col {
		marked = sliceCols(line, start.Col, end.Col)
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(before))
	width := runewidth.StringWidth(marked)
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if p.opts.Color {
		underline = underlineColor.Sprint(underline)
	}
	fmt.Fprintf(p.w, "  %s\n  %s%s\n", p.clip(line), pad, underline)
}

// sliceCols вырезает [fromCol, toCol) из строки; колонки 1-based в байтах,
// как их считает Resolve.
func sliceCols(line string, fromCol, toCol uint32) string {
	from := int(fromCol) - 1
	to := int(toCol) - 1
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return line[from:to]
}

func (p *prettyPrinter) location(span source.Span) string {
	f := p.fs.Get(span.File)
	if f == nil {
		return fmt.Sprintf("<unknown>:%d", span.Start)
	}
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, p.fs, p.opts.PathMode), start.Line, start.Col)
}

func (p *prettyPrinter) clip(s string) string {
	if p.opts.Width == 0 {
		return s
	}
	w := int(p.opts.Width)
	if runewidth.StringWidth(s) <= w {
		return s
	}
	if w <= 3 {
		return runewidth.Truncate(s, w, "")
	}
	return runewidth.Truncate(s, w, "...")
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

var (
	noteColor      = color.New(color.FgCyan)
	underlineColor = color.New(color.FgRed, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
