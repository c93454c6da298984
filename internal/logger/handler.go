package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add custom filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

func tracing() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugFilter
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowed applies an enabled/disabled pair; disabled wins.
func allowed(value string, enabled, disabled map[string]struct{}) bool {
	if _, found := disabled[value]; found {
		return false
	}
	if enabled != nil {
		_, found := enabled[value]
		return found
	}
	return true
}

// recordSource returns the package directory and file name of r's caller.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}
	trace := tracing()

	if pkg, file, ok := recordSource(r); ok {
		if !allowed(strings.ToLower(pkg), h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
			if trace {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: package '%s'\n", pkg)
			}
			return nil
		}
		if !allowed(strings.ToLower(file), h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
			if trace {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: file '%s'\n", file)
			}
			return nil
		}
	}

	var tag string
	var tagFound bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			tagFound = true
			return false
		}
		return true
	})

	switch {
	case tagFound && !allowed(tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet):
		if trace {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: tag '%s'\n", tag)
		}
		return nil
	case !tagFound && h.cfg.enabledTagsSet != nil:
		// filtering for specific tags, untagged messages are dropped
		if trace {
			fmt.Fprintln(os.Stderr, "[FILTER] FILTERED OUT: untagged message while tags are enabled")
		}
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
