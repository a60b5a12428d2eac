package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/logging"
)

// FileStore keeps the collection in a single pretty-printed JSON file.
// The file is opened and closed on every call; nothing is cached between calls.
type FileStore struct {
	path   string
	logger logging.Logger
}

// NewFileStore returns a store bound to path for the lifetime of the process.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &FileStore{path: path, logger: logger.With("store_path", path)}
}

// Path reports the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. A missing file or a document that is not a JSON
// array of students yields an empty collection; callers can't tell the two apart.
func (s *FileStore) Load(ctx context.Context) Collection {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug(ctx, "student file does not exist yet")
		} else {
			s.logger.Warn(ctx, "failed to open student file", "error", err)
		}
		return Collection{}
	}
	defer f.Close()

	var students Collection
	if err := json.NewDecoder(f).Decode(&students); err != nil {
		s.logger.Warn(ctx, "student file is not a valid collection, starting empty", "error", err)
		return Collection{}
	}
	if students == nil {
		// A literal `null` document.
		return Collection{}
	}
	return students
}

// Save overwrites the file with students. The file is truncated before the
// write so a shorter collection never leaves bytes of a longer one behind.
func (s *FileStore) Save(ctx context.Context, students Collection) error {
	if students == nil {
		students = Collection{}
	}

	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return apperror.NewStorageError("failed to encode students", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperror.NewStorageError("failed to create data directory", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperror.NewStorageError("failed to open student file", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return apperror.NewStorageError("failed to write student file", err)
	}
	if err := f.Close(); err != nil {
		return apperror.NewStorageError("failed to close student file", err)
	}

	s.logger.Debug(ctx, "student file saved", "count", len(students), "bytes", len(data))
	return nil
}
