// Package securestore keeps small secrets, such as the session token, sealed
// on disk. Each key is a separate file under a private directory, encrypted
// with AES-256-GCM under a key derived from a device secret.
package securestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/cryptox"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/filex"
)

const (
	saltFile   = ".salt"
	secretFile = ".device"

	secretSize = 32
	suffix     = ".sealed"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

type FileStore struct {
	dir string
	key []byte

	mu sync.Mutex
}

// Open prepares dir and derives the store key. When deviceSecret is empty a
// random secret is generated on first use and kept in dir.
func Open(dir string, deviceSecret []byte) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("secure store: %w", err)
	}

	secret := deviceSecret
	if len(secret) == 0 {
		if secret, err = loadOrCreate(filepath.Join(abs, secretFile), secretSize, newSecret); err != nil {
			return nil, fmt.Errorf("secure store: device secret: %w", err)
		}
	}

	salt, err := loadOrCreate(filepath.Join(abs, saltFile), cryptox.SaltSize, cryptox.NewSalt)
	if err != nil {
		return nil, fmt.Errorf("secure store: salt: %w", err)
	}

	return &FileStore{dir: abs, key: cryptox.DeriveKey(secret, salt)}, nil
}

func newSecret() []byte {
	return common.GenerateRandByteArray(secretSize)
}

// loadOrCreate reads a size-byte file, writing one made by gen when it does
// not exist yet.
func loadOrCreate(path string, size int, gen func() []byte) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil && len(b) == size {
		return b, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		return nil, fmt.Errorf("%s: unexpected length %d", filepath.Base(path), len(b))
	}

	b = gen()
	if err := filex.WriteFileAtomic(path, b, 0o600); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+suffix), nil
}

// Get returns (nil, nil) when nothing is stored under key. A file that fails
// authentication is reported as an error.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secret[%s]: %w", key, err)
	}

	plain, err := cryptox.Open(s.key, data, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to unseal secret[%s]: %w", key, err)
	}
	return plain, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	sealed, err := cryptox.Seal(s.key, value, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to seal secret[%s]: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := filex.WriteFileAtomic(p, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write secret[%s]: %w", key, err)
	}
	return nil
}

// Delete is a no-op for keys that hold nothing.
func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
	}
	return nil
}
