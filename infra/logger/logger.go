package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mstgnz/adyenpay/infra/config"
)

var once sync.Once

// Init configures the global zerolog logger from the environment. Console
// output is pretty-printed outside the live environment, JSON otherwise.
func Init() {
	once.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

		level, err := zerolog.ParseLevel(config.GetEnv("LOGGING_LEVEL", "info"))
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		if config.GetEnv("ADYEN_ENVIRONMENT", "test") != "live" {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: "15:04:05",
			})
		}

		log.Logger = log.Logger.With().Str("service", "adyenpay").Logger()
	})
}

// Debug logs a debug message
func Debug(message string) {
	log.Debug().Msg(message)
}

// Info logs an info message
func Info(message string) {
	log.Info().Msg(message)
}

// Warn logs a warning message
func Warn(message string) {
	log.Warn().Msg(message)
}

// Error logs an error with its message
func Error(message string, err error) {
	log.Error().Err(err).Msg(message)
}

// Fatal logs a fatal error and exits
func Fatal(message string, err error) {
	log.Fatal().Err(err).Msg(message)
}

// WithOperation returns a logger scoped to one gateway operation.
func WithOperation(operation string) zerolog.Logger {
	return log.With().Str("operation", operation).Logger()
}

// WithMerchant returns a logger scoped to one merchant account.
func WithMerchant(merchantAccount string) zerolog.Logger {
	return log.With().Str("merchantAccount", merchantAccount).Logger()
}
