// Package logger construye el logger estructurado del servicio sobre zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string // production emite JSON por línea; cualquier otro valor, consola legible
	Level   string // trace, debug, info, warn, error
	Service string // nombre fijo que acompaña cada línea
}

// New construye el logger raíz y lo instala además como logger global de
// zerolog: los paquetes que escriben vía rs/zerolog/log (el traductor de
// errores HTTP, por ejemplo) salen por la misma configuración.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if cfg.Env != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()

	log.Logger = zl
	return zl
}
