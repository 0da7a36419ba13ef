package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bong/internal/diag"
	"bong/internal/source"
)

const minGutter = 3

type palette struct{ on bool }

func (p palette) paint(s string, attrs ...color.Attribute) string {
	if !p.on {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor() // решение о цвете принимает вызывающий, а не TTY-эвристика пакета color
	return c.Sprint(s)
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.paint(sev.String(), color.FgRed, color.Bold)
	case diag.SevWarning:
		return p.paint(sev.String(), color.FgYellow, color.Bold)
	default:
		return p.paint(sev.String(), color.FgCyan, color.Bold)
	}
}

// Pretty выводит диагностики в человекочитаемом виде:
// заголовок path:line:col, фрагмент исходника и подчёркивание места ошибки.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := palette{on: opts.Color}
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, &d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s %s: %s\n",
		p.paint(position(fs, d.Primary, opts.PathMode), color.Bold),
		p.severity(d.Severity),
		p.paint(d.Code.ID(), color.Bold),
		d.Message)

	writeExcerpt(&b, fs, d.Primary, opts.Context, p)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(&b, "  %s %s: %s\n",
				p.paint("note:", color.FgBlue, color.Bold),
				position(fs, note.Span, opts.PathMode),
				note.Msg)
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(&b, "  %s %s\n", p.paint("fix:", color.FgGreen, color.Bold), fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(&b, "    %s -> %q\n", position(fs, edit.Span, opts.PathMode), edit.NewText)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func position(fs *source.FileSet, span source.Span, mode PathMode) string {
	path := formatPath(fs, span.File, mode)
	if int(span.File) >= fs.Len() {
		return path
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeExcerpt печатает строку с ошибкой (и context строк перед ней) и ^^^ под span.
func writeExcerpt(b *strings.Builder, fs *source.FileSet, span source.Span, context int8, p palette) {
	if int(span.File) >= fs.Len() {
		return
	}
	f := fs.Get(span.File)
	start := f.Location(span.Start)
	end := f.Location(span.End)

	first := start.Line
	if context > 0 {
		if uint32(context) < first {
			first -= uint32(context)
		} else {
			first = 1
		}
	}

	gutter := max(len(fmt.Sprint(start.Line)), minGutter)
	bar := p.paint("|", color.FgBlue)

	var line string
	for n := first; n <= start.Line; n++ {
		line = f.GetLine(n)
		fmt.Fprintf(b, "%s %s %s\n", p.paint(fmt.Sprintf("%*d", gutter, n), color.FgBlue), bar, line)
	}

	before := runePrefix(line, int(start.Col)-1)
	marked := line[len(before):]
	if end.Line == start.Line && end.Col > start.Col {
		marked = runePrefix(marked, int(end.Col-start.Col))
	}
	carets := max(runewidth.StringWidth(marked), 1)

	fmt.Fprintf(b, "%s %s %s%s\n",
		strings.Repeat(" ", gutter), bar,
		padLike(before),
		p.paint(strings.Repeat("^", carets), color.FgRed, color.Bold))
}

// runePrefix returns the first n characters of s.
func runePrefix(s string, n int) string {
	i := 0
	for off := range s {
		if i == n {
			return s[:off]
		}
		i++
	}
	return s
}

// padLike заменяет текст пробелами той же ширины на экране; табы сохраняются.
func padLike(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
