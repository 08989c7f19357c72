package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/utils"
)

// FilePendingStore keeps the pending queue as a JSON array of Listing
// objects. The queue is replaced wholesale every run; its order need not
// survive because listings are re-ranked after loading.
type FilePendingStore struct {
	path   string
	logger *utils.Logger
}

// NewPendingStore creates a store backed by the given file path.
func NewPendingStore(path string, logger *utils.Logger) *FilePendingStore {
	return &FilePendingStore{path: path, logger: logger}
}

// Load reads the pending queue. A missing or corrupt file yields an
// empty queue.
func (s *FilePendingStore) Load() []models.Listing {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Debug("[state] no pending file at %s — starting empty", s.path)
		return nil
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		s.logger.Warn("[state] pending file %s is corrupt (%v) — starting empty", s.path, err)
		return nil
	}
	return listings
}

// Save replaces the pending queue. An empty slice writes an empty JSON
// array so a cleared queue is visible in the file.
func (s *FilePendingStore) Save(listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("state: encode pending listings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("state: create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("state: write pending file: %w", err)
	}
	return nil
}
