package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoSnapshot is returned by Load when there is nothing to restore,
// whether because no session was ever saved or because the slot was
// unreadable. Corrupt state is deliberately indistinguishable from absent
// state: the session starts fresh either way.
var ErrNoSnapshot = errors.New("no saved session")

// FileStore persists snapshots in a single last-writer-wins slot on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the slot next to the config file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.msgpack"
	}
	return filepath.Join(home, ".config", "kt-poe2-tool", "session.msgpack")
}

// Save replaces the slot atomically: a crash mid-write leaves the previous
// snapshot intact.
func (fs *FileStore) Save(s Snapshot) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Load reads the slot. Missing and corrupt slots both yield ErrNoSnapshot.
func (fs *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return Snapshot{}, ErrNoSnapshot
	}
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return s, nil
}

// Clear discards the slot; subsequent Loads report ErrNoSnapshot.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
