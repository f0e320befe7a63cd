// Package session keeps the named values of an interactive session and
// persists them as a msgpack document.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/logging"
)

// Schema is the version written into saved sessions.
const Schema = 1

// LastResult is the name bound to the most recent result.
const LastResult = "_"

var (
	// ErrInvalidName reports a variable name that is not an identifier.
	ErrInvalidName = errors.New("session: invalid variable name")
	// ErrUnsupportedSchema reports a session file written by a newer version.
	ErrUnsupportedSchema = errors.New("session: unsupported schema")
	// ErrCorrupt reports a session file whose names and values disagree.
	ErrCorrupt = errors.New("session: corrupt session file")
)

// document is the on-disk layout. Names and Values are parallel slices so
// that the file is ordered and diffable.
type document struct {
	Schema int           `msgpack:"schema"`
	Names  []string      `msgpack:"names"`
	Values []*bigint.Int `msgpack:"values"`
}

// Store is a concurrency-safe map from names to values.
type Store struct {
	mu     sync.RWMutex
	vars   map[string]*bigint.Int
	logger logging.Logger
}

// NewStore returns an empty store. logger may be nil.
func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{vars: make(map[string]*bigint.Int), logger: logger}
}

// ValidName reports whether name is an identifier: a letter or underscore
// followed by letters, digits or underscores.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Set binds name to v. Values are immutable, so no copy is taken.
func (s *Store) Set(name string, v *bigint.Int) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if v == nil {
		v = new(bigint.Int)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = v
	return nil
}

// Get returns the value bound to name.
func (s *Store) Get(name string) (*bigint.Int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Delete removes name and reports whether it was bound.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.vars[name]
	delete(s.vars, name)
	return ok
}

// Names returns the bound names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound names.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}

// Save writes every binding to path. The file is written to a temporary
// sibling first and renamed into place.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	doc := document{Schema: Schema}
	for name := range s.vars {
		doc.Names = append(doc.Names, name)
	}
	sort.Strings(doc.Names)
	for _, name := range doc.Names {
		doc.Values = append(doc.Values, s.vars[name])
	}
	s.mu.RUnlock()

	data, err := msgpack.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bigcalc-session-*")
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.logger.Debug("session saved", logging.String("path", path), logging.Int("vars", len(doc.Names)))
	return nil
}

// Load replaces the store's bindings with those saved in path.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	var doc document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Schema > Schema || doc.Schema < 1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedSchema, doc.Schema)
	}
	if len(doc.Names) != len(doc.Values) {
		return fmt.Errorf("%w: %d names for %d values", ErrCorrupt, len(doc.Names), len(doc.Values))
	}
	vars := make(map[string]*bigint.Int, len(doc.Names))
	for i, name := range doc.Names {
		if !ValidName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		v := doc.Values[i]
		if v == nil {
			v = new(bigint.Int)
		}
		vars[name] = v
	}

	s.mu.Lock()
	s.vars = vars
	s.mu.Unlock()
	s.logger.Debug("session loaded", logging.String("path", path), logging.Int("vars", len(vars)))
	return nil
}
