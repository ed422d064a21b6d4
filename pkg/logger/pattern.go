package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

var placeholderRe = regexp.MustCompile(`\{(time|level|message|source|attrs)\}`)

// patternHandler renders each record by substituting {time}, {level},
// {message}, {source} and {attrs} into a format string, one line per record.
type patternHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	pattern    string
	level      slog.Leveler
	timeLayout string
	prefix     string // dotted group path for attributes added later
	attrs      string // preformatted attributes from WithAttrs
}

func newPatternHandler(w io.Writer, pattern string, level slog.Leveler, timeLayout string) *patternHandler {
	return &patternHandler{
		mu:         &sync.Mutex{},
		w:          w,
		pattern:    pattern,
		level:      level,
		timeLayout: timeLayout,
	}
}

func (h *patternHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *patternHandler) Handle(_ context.Context, r slog.Record) error {
	var attrs strings.Builder
	attrs.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&attrs, h.prefix, a)
		return true
	})

	line := placeholderRe.ReplaceAllStringFunc(h.pattern, func(token string) string {
		switch token {
		case "{time}":
			if r.Time.IsZero() {
				return ""
			}
			return r.Time.Format(h.timeLayout)
		case "{level}":
			return r.Level.String()
		case "{message}":
			return r.Message
		case "{source}":
			return recordSource(r)
		default:
			return attrs.String()
		}
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *patternHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	clone := *h
	clone.attrs = b.String()
	return &clone
}

func (h *patternHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// appendAttr writes a as " key=value", flattening groups into dotted keys.
func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, prefix, ga)
		}
		return
	}

	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(prefix + a.Key)
	b.WriteByte('=')

	value := a.Value.String()
	if strings.ContainsAny(value, " \t\n\"=") || value == "" {
		value = strconv.Quote(value)
	}
	b.WriteString(value)
}

func recordSource(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
