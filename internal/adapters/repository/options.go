package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/maturity/pkg/metrics"
)

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const sqliteFileName = "maturity.db"

// Open builds the Store selected by backend, rooted at dataDir.
func Open(ctx context.Context, backend, dataDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return NewFileStore(dataDir), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, filepath.Join(dataDir, sqliteFileName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// observe records the outcome and latency of one store operation.
func observe(backend, op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
		metrics.RecordErrorByComponent("repository", op)
	}
	metrics.RecordStoreOperation(backend, op, outcome)
	metrics.RecordStoreLatency(backend, op, float64(time.Since(start).Microseconds())/1000)
}

// BackendName reports the backend constant for s, or "custom".
func BackendName(s Store) string {
	switch s.(type) {
	case *FileStore:
		return BackendFile
	case *SQLiteStore:
		return BackendSQLite
	case *MemoryStore:
		return BackendMemory
	default:
		return "custom"
	}
}
