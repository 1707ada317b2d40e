package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// TeeHandler writes JSON records to a file writer and, optionally, a short
// one-line form of each record to a console writer.
type TeeHandler struct {
	*slog.JSONHandler
	console io.Writer
	mu      *sync.Mutex
	prefix  string
}

// NewTeeHandler returns a handler writing JSON to w. A nil console disables
// the one-line mirror.
func NewTeeHandler(w io.Writer, opts *slog.HandlerOptions, console io.Writer) *TeeHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &TeeHandler{
		JSONHandler: slog.NewJSONHandler(w, opts),
		console:     console,
		mu:          &sync.Mutex{},
	}
}

func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handler := &TeeHandler{
		JSONHandler: h.JSONHandler.WithAttrs(attrs).(*slog.JSONHandler),
		console:     h.console,
		mu:          h.mu,
		prefix:      h.prefix,
	}
	if h.console != nil {
		for _, attr := range attrs {
			handler.prefix += " " + attr.String()
		}
	}
	return handler
}

func (h *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{
		JSONHandler: h.JSONHandler.WithGroup(name).(*slog.JSONHandler),
		console:     h.console,
		mu:          h.mu,
		prefix:      h.prefix,
	}
}

func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.console != nil {
		var b strings.Builder
		b.WriteString("[")
		b.WriteString(r.Level.String()[:1])
		b.WriteString("] ")
		b.WriteString(r.Message)
		b.WriteString(h.prefix)
		r.Attrs(func(attr slog.Attr) bool {
			b.WriteString(" ")
			b.WriteString(attr.String())
			return true
		})
		b.WriteString("\n")
		h.mu.Lock()
		io.WriteString(h.console, b.String())
		h.mu.Unlock()
	}
	return h.JSONHandler.Handle(ctx, r)
}

// ShortFileName trims a source path to its last directory and file name.
func ShortFileName(file string) string {
	idx := strings.LastIndexByte(file, '/')
	if idx >= 0 {
		idx = strings.LastIndexByte(file[:idx], '/')
		if idx >= 0 {
			return file[idx+1:]
		}
	}
	return file
}
