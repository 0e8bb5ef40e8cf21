// Package printer renders user-facing console output: status lines,
// headers, and configuration summaries. Log output goes through zerolog;
// everything a human is meant to read during a run goes through here.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nexusdl/nexusdl/internal/core/styles"
)

const maxSeparatorWidth = 60

// Printer writes styled lines to a single output stream.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

type ctxKey struct{}

// WithCtx attaches a printer to the context.
func WithCtx(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer attached to the context, or a stdout printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintln(p.out, styles.Success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, styles.Warning.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Headerf prints a separator-framed title.
func (p *Printer) Headerf(format string, args ...any) {
	p.Separator()
	fmt.Fprintln(p.out, styles.Header.Render(fmt.Sprintf(format, args...)))
	p.Separator()
}

// Separator prints a horizontal rule sized to the terminal, capped so wide
// terminals don't get a wall of dashes.
func (p *Printer) Separator() {
	fmt.Fprintln(p.out, styles.Separator.Render(strings.Repeat("─", p.width())))
}

// KeyValue prints an indented "key: value" configuration line.
func (p *Printer) KeyValue(key string, value any) {
	fmt.Fprintf(p.out, "  %s %v\n", styles.Muted.Render(key+":"), value)
}

// Item prints an indented list item.
func (p *Printer) Item(format string, args ...any) {
	fmt.Fprintf(p.out, "  %s\n", fmt.Sprintf(format, args...))
}

func (p *Printer) width() int {
	width := maxSeparatorWidth
	if f, ok := p.out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}
	return width
}
