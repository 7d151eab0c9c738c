package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boothlab/photowall/internal/media"
)

// StoredRecord is one row of the record store: the wire record plus the event
// it belongs to.
type StoredRecord struct {
	media.Record
	Event string `json:"event,omitempty"`
}

// Store is the file-backed record keeper behind the dev record server. It
// stands in for the production spreadsheet store and persists to a single
// JSON file under the data directory.
type Store struct {
	path string

	mu      sync.Mutex
	records []StoredRecord
}

func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "records.json")}
}

// Load reads the store from disk. A missing file is an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.records = nil
			return nil
		}
		return err
	}
	var records []StoredRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("source: decode store: %w", err)
	}
	s.records = records
	return nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add mints an id and appends a record.
func (s *Store) Add(conceptName, imageURL, downloadURL string, kind media.Kind, event string) (media.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := media.Record{
		ID:          uuid.NewString(),
		ConceptName: conceptName,
		CreatedAt:   time.Now().UTC(),
		ImageURL:    imageURL,
		DownloadURL: downloadURL,
		Kind:        kind,
	}
	s.records = append(s.records, StoredRecord{Record: rec, Event: event})
	if err := s.save(); err != nil {
		return media.Record{}, err
	}
	return rec, nil
}

// Remove deletes a record by id, reporting whether it existed.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, s.save()
		}
	}
	return false, nil
}

// List returns records for an event, newest first. An empty event returns
// everything.
func (s *Store) List(event string) []media.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]media.Record, 0, len(s.records))
	for _, rec := range s.records {
		if event != "" && rec.Event != event {
			continue
		}
		out = append(out, rec.Record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
