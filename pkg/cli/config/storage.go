package config

import (
	"context"
	"log/slog"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/repository"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage holds reading store configuration. Firestore and SQLite are
// mutually exclusive; with neither set readings live in memory.
type Storage struct {
	FirestoreProjectID  string
	FirestoreDatabaseID string
	SQLitePath          string
}

// Flags returns CLI flags for Storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Storage",
			Sources:     cli.EnvVars("QUEUEPULSE_FIRESTORE_PROJECT"),
			Destination: &s.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Storage",
			Value:       "(default)",
			Sources:     cli.EnvVars("QUEUEPULSE_FIRESTORE_DATABASE"),
			Destination: &s.FirestoreDatabaseID,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (\":memory:\" for a private in-process database)",
			Category:    "Storage",
			Sources:     cli.EnvVars("QUEUEPULSE_SQLITE_PATH"),
			Destination: &s.SQLitePath,
		},
	}
}

// Validate validates the storage configuration
func (s *Storage) Validate() error {
	if s.FirestoreProjectID != "" && s.SQLitePath != "" {
		return goerr.New("firestore and sqlite storage cannot be used together",
			goerr.V("project", s.FirestoreProjectID),
			goerr.V("sqlitePath", s.SQLitePath))
	}
	return nil
}

// Configure creates and returns the configured repository
func (s *Storage) Configure(ctx context.Context, shifts *model.ShiftsConfig) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch {
	case s.FirestoreProjectID != "":
		repo, err := repository.NewFirestore(ctx, s.FirestoreProjectID, s.FirestoreDatabaseID, shifts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", s.FirestoreProjectID),
				goerr.V("database", s.FirestoreDatabaseID),
			)
		}
		return repo, nil

	case s.SQLitePath != "":
		repo, err := repository.NewSQLite(ctx, s.SQLitePath, shifts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init sqlite", goerr.V("path", s.SQLitePath))
		}
		return repo, nil

	default:
		logger.Warn("Using memory database. The data will be removed when shutting down")
		return repository.NewMemory(shifts), nil
	}
}

// Backend names the store Configure will create
func (s Storage) Backend() string {
	switch {
	case s.FirestoreProjectID != "":
		return "firestore"
	case s.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}

// LogValue returns structured log value
func (s Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", s.Backend()),
		slog.String("firestoreProject", s.FirestoreProjectID),
		slog.String("firestoreDatabase", s.FirestoreDatabaseID),
		slog.String("sqlitePath", s.SQLitePath),
	)
}
