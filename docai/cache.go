package docai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// Cache persists service responses on disk, keyed by source filename.
// A cache hit deterministically reproduces the raw-token input of the
// original service call, so reprocessing a document never depends on the
// service being reachable or returning identical results twice.
type Cache struct {
	dir string
}

// NewCache creates a response cache rooted at dir. The directory is
// created on first save.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// key maps a source path to its cache filename: the base name with the
// extension swapped for .json.
func (c *Cache) key(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// Load returns the cached response for sourcePath, or ok=false when no
// entry exists.
func (c *Cache) Load(sourcePath string) (*Document, bool, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, c.key(sourcePath)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parsing cache entry for %s: %w", sourcePath, err)
	}
	return &doc, true, nil
}

// Save writes a response to the cache, replacing any existing entry for
// the same source.
func (c *Cache) Save(sourcePath string, doc *Document) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling cache entry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, c.key(sourcePath)), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
