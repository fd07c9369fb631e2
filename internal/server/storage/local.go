package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/filex"
)

// LocalStore writes objects below a directory and serves them under a URL
// prefix, by default "/uploads/".
type LocalStore struct {
	root   string
	prefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{root: root, prefix: urlPrefix}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, body io.ReadSeeker, _ int64, _ string) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	dir, err := filex.EnsureDir(filepath.Dir(dst))
	if err != nil {
		return err
	}

	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, ".tmp-"+suffix)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", key, err)
	}
	return os.Rename(tmp, dst)
}

// Delete removes the object. A missing object is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(_ context.Context, key string) (string, error) {
	return s.prefix + key, nil
}

// Root is the directory objects are written under.
func (s *LocalStore) Root() string {
	return s.root
}

// Prefix is the URL path the store's Handler should be mounted on.
func (s *LocalStore) Prefix() string {
	return s.prefix
}

// Handler serves stored objects. Mount it on Prefix. Only keys with an image
// extension are served, always with that image type and a locked-down CSP.
func (s *LocalStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))
	serve := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct, ok := ContentTypeOfKey(r.URL.Path)
		if !ok || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Content-Type", ct)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Content-Security-Policy", "default-src 'none'; sandbox")
		files.ServeHTTP(w, r)
	})
	return http.StripPrefix(strings.TrimSuffix(s.prefix, "/"), serve)
}

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("bad object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
