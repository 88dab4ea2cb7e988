package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SentItem is one delivered story in the JSON history file.
type SentItem struct {
	Hash   string    `json:"hash"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	SentAt time.Time `json:"sent_at"`
}

// FileHistory keeps the sent-item history in a JSON file.
type FileHistory struct {
	filePath string
	ttl      time.Duration
	items    map[string]SentItem
	mu       sync.RWMutex
}

func NewFileHistory(filePath string, ttl time.Duration) (*FileHistory, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	fh := &FileHistory{
		filePath: filePath,
		ttl:      ttl,
		items:    make(map[string]SentItem),
	}
	if err := fh.load(); err != nil {
		return nil, err
	}
	return fh, nil
}

// load reads the file, dropping entries past their TTL.
func (fh *FileHistory) load() error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	data, err := os.ReadFile(fh.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read history file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []SentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("unmarshal history: %w", err)
	}

	cutoff := time.Now().Add(-fh.ttl)
	for _, item := range items {
		if item.SentAt.After(cutoff) {
			fh.items[item.Hash] = item
		}
	}
	return nil
}

func (fh *FileHistory) save() error {
	items := make([]SentItem, 0, len(fh.items))
	for _, item := range fh.items {
		items = append(items, item)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(fh.filePath, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

func (fh *FileHistory) Seen(url string) (bool, error) {
	fh.mu.RLock()
	defer fh.mu.RUnlock()

	item, exists := fh.items[HashURL(url)]
	if !exists {
		return false, nil
	}
	return item.SentAt.After(time.Now().Add(-fh.ttl)), nil
}

func (fh *FileHistory) Record(url, title string) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	hash := HashURL(url)
	fh.items[hash] = SentItem{
		Hash:   hash,
		Title:  title,
		URL:    url,
		SentAt: time.Now(),
	}
	return fh.save()
}

func (fh *FileHistory) Close() error {
	return nil
}
