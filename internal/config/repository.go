package config

import (
	"os"

	apperrors "duelist/internal/errors"
	"duelist/internal/repository/sqlite"
)

// CreateHistoryRepository opens the event journal at the configured path,
// creating its directory if needed.
func CreateHistoryRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.History.Dir, os.FileMode(config.History.DirPermissions)); err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorTypeDatabase, "failed to create history directory").
			With(apperrors.FieldPath, config.History.Dir)
	}

	path := config.GetHistoryPath()
	repo, err := sqlite.New(path)
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorTypeDatabase, "failed to initialize history database").
			With(apperrors.FieldPath, path)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorTypeDatabase, "failed to initialize test database")
	}

	return repo, nil
}
