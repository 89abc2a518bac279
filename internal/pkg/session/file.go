package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

var _ Store = (*FileStore)(nil)

type fileSession struct {
	AccessToken string `json:"access_token"`
	UserRole    string `json:"user_role"`
}

// FileStore persists the session as a JSON file. Writes go to a temporary
// file that is renamed into place, so a concurrent reader sees the old pair
// or the new pair.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Save(token string, role models.Role) error {
	if err := validate(token, role); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileSession{AccessToken: token, UserRole: string(role)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeAtomic(f.path, data)
}

// Read returns the stored session. A missing file is an empty session; an
// unreadable or corrupt one is logged and also treated as empty, which sends
// the caller back to login.
func (f *FileStore) Read() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("Failed to read session file", zap.String("path", f.path), zap.Error(err))
		}
		return models.Session{}
	}

	var stored fileSession
	if err := json.Unmarshal(data, &stored); err != nil {
		f.logger.Warn("Corrupt session file", zap.String("path", f.path), zap.Error(err))
		return models.Session{}
	}
	return normalize(stored.AccessToken, stored.UserRole)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", f.path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary session file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary session file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary session file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary session file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming session file into place: %w", err)
	}
	return nil
}
