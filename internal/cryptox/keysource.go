package cryptox

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoPassphrase is returned by KeySource.Read when nothing is stored yet.
var ErrNoPassphrase = errors.New("passphrase not found")

// KeySource stores passphrase material.
type KeySource interface {
	// Read returns the stored passphrase or ErrNoPassphrase.
	Read(ctx context.Context) ([]byte, error)
	// Write persists a newly generated passphrase.
	Write(ctx context.Context, passphrase []byte) error
	// Location describes where the passphrase lives, for logs and config.
	Location() string
}

// FileKeySource keeps the passphrase in a local file.
type FileKeySource struct {
	path string
}

func NewFileKeySource(path string) *FileKeySource {
	return &FileKeySource{path: path}
}

func (s *FileKeySource) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoPassphrase
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *FileKeySource) Write(ctx context.Context, passphrase []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, passphrase, 0o600)
}

func (s *FileKeySource) Location() string {
	return s.path
}
