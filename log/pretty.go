package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the lipgloss styles used to render one record. The styles
// are bound to a renderer for the handler's writer, so color is dropped
// automatically when the writer is not a terminal.
type palette struct {
	key, str, num, dur, when lipgloss.Style
	yes, no, null            lipgloss.Style
	level                    map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		dur:  fg("5"),
		when: fg("4"),
		yes:  fg("2"),
		no:   fg("1"),
		null: fg("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("4"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p *palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyHandler renders records for humans. In text mode each record is a
// single line of key=value pairs. In JSON mode each record is an indented
// object with unquoted strings.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime func(time.Time) string
	colors     *palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	prefix     string
	multiline  bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime func(time.Time) string,
	multiline bool,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		colors:     newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
		multiline:  multiline,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	n := 0
	emit := func(key string, value string) {
		switch {
		case h.multiline && n == 0:
			buf.WriteString("{\n  ")
		case h.multiline:
			buf.WriteString(",\n  ")
		case n > 0:
			buf.WriteByte(' ')
		}

		buf.WriteString(h.colors.key.Render(key))

		if h.multiline {
			buf.WriteString(": ")
		} else {
			buf.WriteByte('=')
		}

		buf.WriteString(value)
		n++
	}

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			emit(slog.TimeKey, h.colors.when.Render(s))
		}
	}

	emit(slog.LevelKey, h.colors.levelStyle(r.Level).
		Render(strings.ToUpper(Level(r.Level).String())))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			emit(slog.SourceKey, h.colors.str.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	emit(slog.MessageKey, h.colors.str.Render(r.Message))

	var walk func(prefix string, a slog.Attr)

	walk = func(prefix string, a slog.Attr) {
		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			for _, g := range v.Group() {
				walk(prefix+a.Key+".", g)
			}

			return
		}

		if a.Equal(slog.Attr{}) {
			return
		}

		emit(prefix+a.Key, h.value(v))
	}

	for _, a := range h.attrs {
		walk("", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		walk(h.prefix, a)

		return true
	})

	if h.multiline {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) value(v slog.Value) string {
	p := h.colors

	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())
	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")
	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())
	case slog.KindTime:
		return p.when.Render(h.formatTime(v.Time()))
	default:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	}
}
