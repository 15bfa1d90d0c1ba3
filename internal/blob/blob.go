package blob

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded binary objects (product images) and returns the
// public URL path they are served under.
type Store interface {
	Put(name string, data []byte) (string, error)
	Remove(name string) error
}

// DiskStore writes objects under a local directory served at /media.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = abs
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

var errBadName = errors.New("invalid object name")

// clean rejects traversal attempts before joining under the media dir.
func (s *DiskStore) clean(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || strings.Contains(name, "\x00") {
		return "", errBadName
	}
	c := filepath.Clean(name)
	if c == "." || filepath.IsAbs(c) || strings.HasPrefix(c, "..") {
		return "", errBadName
	}
	return filepath.Join(s.Dir, c), nil
}

func (s *DiskStore) Put(name string, data []byte) (string, error) {
	full, err := s.clean(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return "/media/" + filepath.ToSlash(filepath.Clean(name)), nil
}

func (s *DiskStore) Remove(name string) error {
	full, err := s.clean(name)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
