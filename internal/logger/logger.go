package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var L zerolog.Logger

// Init configures the global logger. Levels: debug, info, warn, error.
func Init(level string) {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		lvl = parsed
	}
	L = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).Level(lvl)
}

func init() { Init("info") }
