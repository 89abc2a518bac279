// Package markup is the small writer the hand-written components share. It
// escapes text and attribute values and keeps the first write error, so a
// component body reads top to bottom without an error check per line.
package markup

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

type Writer struct {
	ctx      context.Context
	children templ.Component
	w        io.Writer
	err      error
}

// New takes over the children attached to ctx; components rendered through
// the writer see a context without them.
func New(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: templ.ClearChildren(ctx), children: templ.GetChildren(ctx), w: w}
}

// Raw writes trusted markup as is.
func (m *Writer) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Rawf formats trusted markup. Untrusted values must go through Esc or Attr.
func (m *Writer) Rawf(format string, args ...any) {
	m.Raw(fmt.Sprintf(format, args...))
}

// Text writes s escaped.
func (m *Writer) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Component renders c in place. A nil component writes nothing.
func (m *Writer) Component(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

// Children renders the children the component was called with, if any.
func (m *Writer) Children() {
	m.Component(m.children)
}

func (m *Writer) Err() error {
	return m.err
}

// Esc escapes s for text or attribute positions.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// Attr renders ` name="value"` with value escaped, or nothing when value is
// empty.
func Attr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// Attrs renders extra attributes in a stable order. Boolean true renders the
// bare name, false drops it.
func Attrs(attrs templ.Attributes) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				b.WriteString(" " + templ.EscapeString(k))
			}
		case string:
			b.WriteString(" " + templ.EscapeString(k) + `="` + templ.EscapeString(v) + `"`)
		default:
			b.WriteString(" " + templ.EscapeString(k) + `="` + templ.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
	return b.String()
}

// Func wraps a body writing through a Writer into a templ.Component.
func Func(body func(m *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := New(ctx, w)
		body(m)
		return m.Err()
	})
}

func TextComponent(s string) templ.Component {
	return Func(func(m *Writer) { m.Text(s) })
}

// With renders c with children attached, the way a templ call block does.
func With(c, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return c.Render(templ.WithChildren(ctx, children), w)
	})
}
