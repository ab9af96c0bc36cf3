// Package logging глобальный zerolog-логгер приложения.
//
// Инициализация при старте:
//
//	logging.Init(logging.Config{Level: "info", Format: "console"})
//	logging.Info().Str("db", path).Msg("каталог открыт")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config настройки логирования
type Config struct {
	// Level минимальный уровень: debug, info, warn, error
	Level string
	// Format формат вывода: json или console
	Format string
	// Output куда писать, по умолчанию os.Stderr
	Output io.Writer
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger(DefaultConfig())
}

// Init перенастраивает глобальный логгер. Допускается повторный вызов.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger вызывается под mu
func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()
}

// ParseLevel переводит строковый уровень в zerolog.Level; неизвестные значения дают info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger возвращает копию глобального логгера
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With возвращает логгер с полем component
func With(component string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", component).Logger()
}

// Debug начинает сообщение уровня debug
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info начинает сообщение уровня info
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn начинает сообщение уровня warn
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error начинает сообщение уровня error
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal начинает сообщение уровня fatal; после записи процесс завершается
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}
