package ulogger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	opts    Options
}

func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "blockminer"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	var w io.Writer = opts.writer
	if opts.pretty {
		w = consoleWriter(opts.writer, service)
	}

	z := &ZLoggerWrapper{
		Logger: zerolog.New(w).With().
			Timestamp().
			Str("service", service).
			Logger(),
		service: service,
		opts:    *opts,
	}

	z.SetLogLevel(opts.logLevel)

	return z
}

func consoleWriter(out io.Writer, service string) zerolog.ConsoleWriter {
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    out != os.Stdout,
		TimeFormat: time.RFC3339,
	}

	output.FormatLevel = func(i interface{}) string {
		return fmt.Sprintf("| %s|", strings.ToUpper(fmt.Sprintf("%-6s", i)))
	}

	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("| %-9s| %s", service, i)
	}

	// service is already part of the message column
	output.FieldsExclude = []string{"service"}

	return output
}

func (z *ZLoggerWrapper) LogLevel() int {
	return int(z.Logger.GetLevel())
}

func (z *ZLoggerWrapper) SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	z.Logger = z.Logger.Level(lvl)
	z.opts.logLevel = lvl.String()
}

func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	opts := []Option{
		WithLevel(z.opts.logLevel),
		WithWriter(z.opts.writer),
		WithPretty(z.opts.pretty),
	}

	return NewZeroLogger(service, append(opts, options...)...)
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}
