// Package logger wraps zerolog for the optimizer service.
//
// The HTTP layer stores the request id on the request context and the
// optimizer derives its per-run logger from that context, so a solve can be
// traced back to the request that triggered it.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

const defaultService = "round-trip-optimizer"

// Config selects level, format and static fields.
type Config struct {
	// Level is a zerolog level name; unknown names fall back to info
	Level string

	// Format is FormatJSON or FormatConsole
	Format string

	// EnableCaller adds file:line to every entry
	EnableCaller bool

	// ServiceName is attached as the "service" field
	ServiceName string
}

// DefaultConfig returns JSON logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:       zerolog.InfoLevel.String(),
		Format:      FormatJSON,
		ServiceName: defaultService,
	}
}

// Logger is a zerolog logger with the field helpers used across the service.
type Logger struct {
	zerolog.Logger
}

// New builds a logger writing to out; a nil out means stdout.
func New(cfg Config, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := cfg.ServiceName
	if service == "" {
		service = defaultService
	}

	zctx := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service)
	if cfg.EnableCaller {
		zctx = zctx.Caller()
	}
	return &Logger{Logger: zctx.Logger()}
}

func parseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithField returns a child logger carrying key=value on every entry.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithRequestID tags entries with the HTTP request id.
func (l *Logger) WithRequestID(id string) *Logger {
	return l.WithField(fieldRequestID, id)
}

// WithSolver tags entries with the solver backend name.
func (l *Logger) WithSolver(name string) *Logger {
	return l.WithField("solver", name)
}

// WithComponent tags entries with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Ctx returns l tagged with the request id stored on ctx, or l itself
// when ctx carries none.
func (l *Logger) Ctx(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.WithRequestID(id)
	}
	return l
}

const fieldRequestID = "request_id"

type requestIDKey struct{}

// ContextWithRequestID stores a request id on ctx for Logger.Ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored on ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Default returns the process logger, creating it from DefaultConfig on
// first use.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultConfig(), nil)
	}
	return defaultLogger
}

// SetDefault replaces the process logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}
