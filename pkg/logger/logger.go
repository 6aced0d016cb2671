package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	TargetConsole = "console"
	TargetFile    = "file"
)

var (
	mu     sync.RWMutex
	global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
)

// InitGlobalLogger replaces the process logger. Unknown levels fall back to info.
func InitGlobalLogger(cfg *Config) {
	l := New(cfg)

	mu.Lock()
	global = l
	mu.Unlock()
}

// New builds a logger writing to the configured targets.
func New(cfg *Config) zerolog.Logger {
	writers := make([]io.Writer, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		switch target {
		case TargetConsole:
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		case TargetFile:
			if cfg.Filename == "" {
				continue
			}
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Filename,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			})
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp().Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	l := global

	return &l
}

func Debug(msg string, keyvals ...any) {
	current().Debug().Fields(keyvals).Msg(msg)
}

func Info(msg string, keyvals ...any) {
	current().Info().Fields(keyvals).Msg(msg)
}

func Warn(msg string, keyvals ...any) {
	current().Warn().Fields(keyvals).Msg(msg)
}

func Error(msg string, keyvals ...any) {
	current().Error().Fields(keyvals).Msg(msg)
}
