package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmsedge/queuepulse/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	// LogOutputStderr keeps stdout free for report output
	LogOutputStderr = "stderr"
	LogOutputStdout = "stdout"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
	Output string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("QUEUEPULSE_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("QUEUEPULSE_LOG_FORMAT"),
			Destination: &l.Format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log destination: stderr, stdout or a file path (appended)",
			Category:    "Logging",
			Value:       LogOutputStderr,
			Sources:     cli.EnvVars("QUEUEPULSE_LOG_OUTPUT"),
			Destination: &l.Output,
		},
	}
}

// Validate validates the logger configuration
func (l *Logger) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return goerr.New("invalid log level", goerr.V("level", l.Level))
	}

	if _, err := parseLogFormat(l.Format); err != nil {
		return err
	}
	return nil
}

// Configure validates the configuration and builds the logger. The returned
// closer releases the log file and is a no-op for the standard streams.
func (l *Logger) Configure() (*slog.Logger, io.Closer, error) {
	if err := l.Validate(); err != nil {
		return nil, nil, err
	}
	format, _ := parseLogFormat(l.Format)

	w, closer, err := l.openOutput()
	if err != nil {
		return nil, nil, err
	}

	return logging.NewLoggerWithFormat(logging.ParseLogLevel(l.Level), w, format), closer, nil
}

func (l *Logger) openOutput() (io.Writer, io.Closer, error) {
	switch l.Output {
	case "", LogOutputStderr:
		return os.Stderr, nopCloser{}, nil
	case LogOutputStdout:
		return os.Stdout, nopCloser{}, nil
	}

	f, err := os.OpenFile(l.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.Output))
	}
	return f, f, nil
}

func parseLogFormat(format string) (logging.Format, error) {
	switch format {
	case "auto", "":
		return logging.FormatAuto, nil
	case "console":
		return logging.FormatConsole, nil
	case "json":
		return logging.FormatJSON, nil
	default:
		return logging.FormatAuto, goerr.New("invalid log format", goerr.V("format", format))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
		slog.String("output", l.Output),
	)
}
