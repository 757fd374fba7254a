package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

const (
	logDir      = "logs"
	logFileName = "kernel-lens.log"
	maxLogSize  = 10 * 1024 * 1024
)

var logLevel = new(slog.LevelVar)

// logOptions selects the log sinks, the terminal itself is never a sink while tcell owns it
type logOptions struct {
	Debug   bool   // Write to logDir/logFileName
	Journal bool   // Write to the systemd journal
	Level   string // debug, info, warn or error
	Dir     string // Overrides logDir
}

// setupLogging builds a fanout logger over the enabled sinks
// With no sink enabled the logger discards and the closer is nil
func setupLogging(opts logOptions) (*slog.Logger, io.Closer, error) {
	if err := logLevel.UnmarshalText([]byte(defaultString(opts.Level, "info"))); err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var (
		handlers []slog.Handler
		closer   io.Closer
	)

	if opts.Debug {
		dir := defaultString(opts.Dir, logDir)
		f, err := openLogFile(dir)
		if err != nil {
			return nil, nil, err
		}
		closer = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}

	if opts.Journal {
		jh, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: logLevel,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, fmt.Errorf("opening journal: %w", err)
		}
		handlers = append(handlers, jh)
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// openLogFile creates dir and opens the log for append, rotating it first when it exceeds maxLogSize
func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		stamp := time.Now().Format("20060102-150405")
		rotated := filepath.Join(dir, strings.TrimSuffix(logFileName, ".log")+"-"+stamp+".log")
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// toJournalKey maps attribute keys to the upper snake case journal fields require
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
