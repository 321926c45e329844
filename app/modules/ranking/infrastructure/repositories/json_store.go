package rankingdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

// JSONStore keeps the document in a single UTF-8 JSON file.
type JSONStore struct {
	path string
	now  func() time.Time
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store writing to path. now may be nil.
func NewJSONStore(path string, now func() time.Time) *JSONStore {
	if now == nil {
		now = time.Now
	}
	return &JSONStore{path: path, now: now}
}

func (s *JSONStore) Driver() string { return "json" }

// Path returns the file the store writes to.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load(ctx context.Context) (*rankingdomain.Document, error) {
	today := rankingdomain.Today(s.now())

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return rankingdomain.NewDocument(today), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc rankingdomain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, s.path, err)
	}
	doc.Normalize(today)
	return &doc, nil
}

// Save writes the document indented, without HTML escaping, through a
// temporary file renamed over the target.
func (s *JSONStore) Save(ctx context.Context, doc *rankingdomain.Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode ranking document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
