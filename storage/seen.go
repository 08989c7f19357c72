package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/utils"
)

// maxSeenIDs bounds the seen-ID file: on save only the entries with the
// highest numeric ordinal (the most recently posted) are retained.
const maxSeenIDs = 5000

// SeenSet tracks listing IDs already delivered or otherwise consumed.
// A run owns its set exclusively from load to save, so no locking.
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet creates a set holding the given IDs.
func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add returns true if the ID was newly added, false if already present.
func (s *SeenSet) Add(id string) bool {
	if _, exists := s.ids[id]; exists {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains returns true if the ID has already been consumed.
func (s *SeenSet) Contains(id string) bool {
	_, exists := s.ids[id]
	return exists
}

// Size returns the number of tracked IDs.
func (s *SeenSet) Size() int {
	return len(s.ids)
}

// IDs returns the tracked IDs in unspecified order.
func (s *SeenSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// FileSeenStore keeps the seen-ID set in a plain JSON array of strings,
// human-inspectable and safe to delete (the set just starts empty).
type FileSeenStore struct {
	path   string
	logger *utils.Logger
}

// NewSeenStore creates a store backed by the given file path.
func NewSeenStore(path string, logger *utils.Logger) *FileSeenStore {
	return &FileSeenStore{path: path, logger: logger}
}

// Load reads the seen-ID file. A missing or corrupt file yields an
// empty set rather than an error; that collapse is deliberate and
// happens only here.
func (s *FileSeenStore) Load() *SeenSet {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Debug("[state] no seen file at %s — starting empty", s.path)
		return NewSeenSet()
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("[state] seen file %s is corrupt (%v) — starting empty", s.path, err)
		return NewSeenSet()
	}
	return NewSeenSet(ids...)
}

// Save writes the set back, truncated to the maxSeenIDs entries with the
// highest numeric ordinal. Non-numeric IDs sort as 0 and are the first
// to be dropped.
func (s *FileSeenStore) Save(set *SeenSet) error {
	ids := set.IDs()
	sort.Slice(ids, func(i, j int) bool {
		a, b := models.IDOrdinal(ids[i]), models.IDOrdinal(ids[j])
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	if len(ids) > maxSeenIDs {
		ids = ids[len(ids)-maxSeenIDs:]
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("state: encode seen ids: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("state: create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("state: write seen file: %w", err)
	}
	return nil
}
