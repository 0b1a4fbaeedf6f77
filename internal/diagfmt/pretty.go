package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"partref/internal/diag"
	"partref/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	markColor    = color.New(color.FgRed, color.Bold)
	gutterColor  = color.New(color.FgBlue)
	noteColor    = color.New(color.FgCyan)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := paint(severityColor(d.Severity), opts.Color, d.Severity.String())
	code := paint(severityColor(d.Severity), opts.Color, d.Code.ID())
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col, sev, code, d.Message)

	writeSpanContext(w, fs, d.Primary, opts.Context, opts.Color)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			label := paint(noteColor, opts.Color, "note")
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
				label, formatPath(nf, opts.PathMode, opts.BaseDir), nstart.Line, nstart.Col, note.Msg)
			writeSpanContext(w, fs, note.Span, 0, opts.Color)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
			for _, edit := range fix.Edits {
				ef := fs.Get(edit.Span.File)
				estart, _ := fs.Resolve(edit.Span)
				fmt.Fprintf(w, "      apply=%q at %s:%d:%d\n",
					edit.NewText, formatPath(ef, opts.PathMode, opts.BaseDir), estart.Line, estart.Col)
				if opts.ShowPreview {
					writeEditPreview(w, fs, edit)
				}
			}
		}
	}
}

func writeEditPreview(w io.Writer, fs *source.FileSet, edit diag.FixEdit) {
	preview, err := buildFixEditPreview(fs, edit)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "      preview:\n")
	for _, line := range preview.before {
		fmt.Fprintf(w, "      - %s\n", line)
	}
	for _, line := range preview.after {
		fmt.Fprintf(w, "      + %s\n", line)
	}
}

// writeSpanContext печатает строки вокруг span и подчёркивание ^~~~ под ним.
// Колонки в LineCol байтовые, поэтому ширина подчёркивания меряется
// runewidth по вырезанному тексту, а не по числу байт.
func writeSpanContext(w io.Writer, fs *source.FileSet, span source.Span, context uint8, colored bool) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)

	// завершающий \n не открывает новую строку
	maxLine := uint32(len(f.LineIdx)) + 1
	if n := len(f.Content); n > 0 && f.Content[n-1] == '\n' {
		maxLine--
	}
	firstLine := start.Line
	if ctx := uint32(context); firstLine > ctx {
		firstLine -= ctx
	} else {
		firstLine = 1
	}
	lastLine := min(start.Line+uint32(context), maxLine)

	gutter := len(fmt.Sprint(lastLine))
	for ln := firstLine; ln <= lastLine; ln++ {
		lineText := f.GetLine(ln)
		num := paint(gutterColor, colored, fmt.Sprintf("%*d", gutter, ln))
		fmt.Fprintf(w, "  %s | %s\n", num, expandTabs(lineText))
		if ln == start.Line {
			pad, marker := underline(lineText, start, end)
			fmt.Fprintf(w, "  %s | %s%s\n",
				strings.Repeat(" ", gutter), pad, paint(markColor, colored, marker))
		}
	}
}

// underline возвращает отступ и маркер ^~~~ для строки lineText.
// Для span, уходящего за конец строки или на следующие строки,
// подчёркивается хвост от начальной колонки до конца строки.
func underline(lineText string, start, end source.LineCol) (pad, marker string) {
	startIdx := int(start.Col) - 1
	if startIdx > len(lineText) {
		startIdx = len(lineText)
	}

	endIdx := len(lineText)
	if end.Line == start.Line && int(end.Col)-1 < endIdx {
		endIdx = int(end.Col) - 1
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}

	pad = strings.Repeat(" ", runewidth.StringWidth(expandTabs(lineText[:startIdx])))
	width := runewidth.StringWidth(expandTabs(lineText[startIdx:endIdx]))
	if width < 1 {
		width = 1
	}
	marker = "^" + strings.Repeat("~", width-1)
	return pad, marker
}

// expandTabs заменяет табы на четыре пробела: подчёркивание меряется
// по заменённой строке и не зависит от табстопов терминала.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
