// Package logger arma el zerolog del proceso: consola en desarrollo, JSON en producción
// y archivo para la terminal de venta, que ocupa stdout con su pantalla.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config entorno, nivel y destino del log.
type Config struct {
	Env   string    // "development" = consola; otro valor = JSON
	Level string    // nivel zerolog; vacío o desconocido = info
	Out   io.Writer // nil = os.Stdout
}

// Logger lo comparten cmd/api, cmd/pos y cmd/seed; los servicios reciben Zerolog().
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger y lo instala también como log.Logger global.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		// sin color cuando va a un archivo
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.Out != nil}
	}

	zl := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// NewFile igual que New pero agregando al final de path. El llamador cierra el io.Closer al salir.
func NewFile(cfg Config, path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir archivo de log: %w", err)
	}
	cfg.Out = f
	return New(cfg), f, nil
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal registra y termina el proceso con os.Exit(1) al llamar Msg.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Zerolog el logger para inyectar en servicios y repositorios.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
