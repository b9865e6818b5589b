package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmsedge/queuepulse/pkg/cli"
	"github.com/m-mizutani/gt"
)

func TestRun_RejectsInvalidLogLevel(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "daily.json")

	err := cli.Run(context.Background(), []string{
		"queuepulse", "--log-level", "verbose", "report", "daily",
		"--output", outPath,
	})
	gt.Error(t, err)

	// the subcommand never ran
	_, statErr := os.Stat(outPath)
	gt.True(t, os.IsNotExist(statErr))
}

func TestRun_LogsToFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "readings.db")
	logPath := filepath.Join(dir, "queuepulse.log")
	seedSQLite(t, dbPath, 1, 4)

	err := cli.Run(context.Background(), []string{
		"queuepulse", "--log-level", "debug", "--log-format", "json", "--log-output", logPath,
		"report", "daily",
		"--sqlite-path", dbPath,
		"--timezone", "UTC",
		"--date", "2025-03-14",
		"--output", filepath.Join(dir, "daily.json"),
	})
	gt.NoError(t, err).Required()

	raw, err := os.ReadFile(logPath)
	gt.NoError(t, err).Required()
	gt.S(t, string(raw)).Contains("Report written")
}
