package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CacheSession is a SessionStore that keeps one zstd-compressed file per key
// in a cache directory.
type CacheSession struct {
	dir string
}

// NewCacheSession creates a cache store rooted at dir.
func NewCacheSession(dir string) *CacheSession {
	return &CacheSession{dir: dir}
}

func (c *CacheSession) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(key)
	return filepath.Join(c.dir, name+".json.zst")
}

// Get decompresses the file for key.
func (c *CacheSession) Get(_ context.Context, key string) ([]byte, error) {
	f, err := os.Open(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}

// Set compresses data into the file for key.
func (c *CacheSession) Set(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".cache-*.zst")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	zw, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		return fmt.Errorf("replacing cache: %w", err)
	}
	return nil
}
