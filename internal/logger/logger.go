package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New arma el logger global del proceso. JSON a stdout; LOG_LEVEL y
// LOG_PRETTY se leen del entorno.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}

	var log zerolog.Logger
	if os.Getenv("LOG_PRETTY") == "true" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stdout)
	}

	return log.Level(level).With().Timestamp().Logger()
}
