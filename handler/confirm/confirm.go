package confirm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/k1LoW/errors"
)

const (
	// MessageCreated is the log message of a written icon.
	MessageCreated = "created icon"
	// AttrFile holds the file name of a written icon.
	AttrFile = "file"
)

var _ slog.Handler = (*confirmHandler)(nil)

// New returns a handler that prints "Created <file>" to w for every MessageCreated record
// and passes all records on to h.
func New(w io.Writer, h slog.Handler) slog.Handler {
	return &confirmHandler{
		handler: h,
		w:       w,
		mu:      &sync.Mutex{},
	}
}

type confirmHandler struct {
	handler slog.Handler
	w       io.Writer
	mu      *sync.Mutex
	attrs   []slog.Attr
}

func (h *confirmHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo || h.handler.Enabled(ctx, level)
}

func (h *confirmHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if r.Message == MessageCreated {
		if file, ok := h.file(r); ok {
			h.mu.Lock()
			_, err := fmt.Fprintf(h.w, "Created %s\n", file)
			h.mu.Unlock()
			if err != nil {
				return err
			}
		}
	}
	if !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

func (h *confirmHandler) file(r slog.Record) (string, bool) {
	var (
		file  string
		found bool
	)
	check := func(a slog.Attr) bool {
		if a.Key == AttrFile {
			file = a.Value.String()
			found = true
			return false
		}
		return true
	}
	for _, a := range h.attrs {
		if !check(a) {
			break
		}
	}
	r.Attrs(check)
	return file, found
}

func (h *confirmHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &confirmHandler{
		handler: h.handler.WithAttrs(attrs),
		w:       h.w,
		mu:      h.mu,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *confirmHandler) WithGroup(name string) slog.Handler {
	return &confirmHandler{
		handler: h.handler.WithGroup(name),
		w:       h.w,
		mu:      h.mu,
		attrs:   h.attrs,
	}
}
