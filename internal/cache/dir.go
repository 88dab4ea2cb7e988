package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

const entrySuffix = "_summary.txt"

// DirCache is the filesystem SummaryCache. Entries live two levels deep,
// bucketed by the first two hex characters of the key:
//
//	root/ab/abcdef…_summary.txt
//
// so no single directory accumulates the whole corpus. Shard directories
// are created lazily on first write. Concurrent runs against the same
// root are tolerated; entries are immutable, so a racing double write
// is last-writer-wins over identical-intent content.
type DirCache struct {
	root string
}

func NewDirCache(root string) (*DirCache, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cache root %s: %w", root, err)
	}
	return &DirCache{root: root}, nil
}

func (c *DirCache) entryPath(key string) string {
	return filepath.Join(c.root, key[:2], key+entrySuffix)
}

func (c *DirCache) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	return string(data), true, nil
}

func (c *DirCache) Put(key, value string) error {
	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache shard for %s: %w", key, err)
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}
