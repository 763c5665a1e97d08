// Package storage implements the output-storage destination named at its
// interface in §6. Only the local-directory variant is implemented
// concretely; remote blob and remote object store are named but not
// configured, since neither has a canonical Go SDK fixed by the
// specification or the retrieved corpus.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotConfigured is returned by storage destinations the configuration
// surface names but this package doesn't implement.
var ErrNotConfigured = errors.New("storage: destination not configured")

// Destination writes a finished SRT artifact to wherever the orchestrator
// is configured to publish it.
type Destination interface {
	Put(name string, content []byte) (location string, err error)
}

// LocalDir writes artifacts to a directory on the local filesystem.
type LocalDir struct {
	Dir string
}

func NewLocalDir(dir string) *LocalDir {
	return &LocalDir{Dir: dir}
}

func (l *LocalDir) Put(name string, content []byte) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create output dir failed: %w", err)
	}
	path := filepath.Join(l.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("storage: write artifact failed: %w", err)
	}
	return path, nil
}

// RemoteBlob is a named-but-unimplemented destination variant.
type RemoteBlob struct{}

func (RemoteBlob) Put(string, []byte) (string, error) { return "", ErrNotConfigured }

// RemoteObjectStore is a named-but-unimplemented destination variant.
type RemoteObjectStore struct{}

func (RemoteObjectStore) Put(string, []byte) (string, error) { return "", ErrNotConfigured }
