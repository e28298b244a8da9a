package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// FileStore keeps one <collection>.json file per collection under dir.
// Writes overwrite the file unconditionally; there is no cross-process
// coordination, so the last writer wins.
type FileStore struct {
	dir    string
	logger *logging.Logger
}

// NewFileStore creates a filesystem-backed store rooted at dir.
func NewFileStore(dir string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Read loads the collection document. A missing or empty file is an
// empty collection, not an error.
func (s *FileStore) Read(ctx context.Context, collection string) ([]Record, string, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, "", nil
		}
		return nil, "", fmt.Errorf("records: read %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	if len(data) == 0 {
		return []Record{}, "", nil
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		s.logger.Warn("collection document is not a JSON array, treating as empty",
			"collection", collection,
			"error", err,
		)
		return []Record{}, "", fmt.Errorf("records: read %s: %w", collection, ErrMalformedDocument)
	}
	return recs, "", nil
}

// Write replaces the collection document. The version token and change
// description are ignored; the filesystem keeps no history.
func (s *FileStore) Write(ctx context.Context, collection string, recs []Record, version, description string) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("records: encode %s: %w", collection, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("records: write %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("records: write %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	s.logger.Debug("collection written", "collection", collection, "records", len(recs))
	return nil
}
