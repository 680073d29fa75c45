// Package log is the leveled, prefixed logger shared by the binaries.
package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const colorReset = "\033[0m"

var ErrNilWriter = errors.New("log: writer is required")

// Logger writes leveled messages tagged with a component prefix.
type Logger struct {
	zl zerolog.Logger
}

// New returns a Logger writing to w. With a color the output is a human
// readable console line with a colored [PREFIX]; without one every message is
// a JSON object carrying the prefix as "component".
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	out := w
	if color != "" {
		tag := fmt.Sprintf("%s[%s]%s", color, prefix, colorReset)
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			FormatMessage: func(i any) string {
				return fmt.Sprintf("%s %v", tag, i)
			},
		}
	}

	zl := zerolog.New(out).With().Timestamp().Str("component", prefix).Logger().Level(zerolog.InfoLevel)
	return &Logger{zl: zl}, nil
}

// SetLevel filters out messages below level (debug, info, warn or error).
// It is not safe to call while the logger is in use.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	l.zl = l.zl.Level(lvl)
	return nil
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }

func (l *Logger) Info(msg string) { l.zl.Info().Msg(msg) }

func (l *Logger) Warn(msg string) { l.zl.Warn().Msg(msg) }

func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }
