package fixture

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/conduit-lang/compound/pkg/compound"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidFixture is returned when a fixture file is malformed
	ErrInvalidFixture = errors.New("invalid fixture")

	// ErrNotFound is returned when a type or record does not exist
	ErrNotFound = errors.New("not found")
)

// Store is an in-memory, read-only set of records indexed by identity and type.
type Store struct {
	records   map[compound.Identifier]*Record
	byType    map[string][]*Record
	relations map[string]map[string]bool   // type -> relation name -> to-many
	targets   map[string]map[string]string // type -> relation name -> related type, "" when mixed
}

// Load reads and parses a fixture file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

// Parse parses fixture YAML.
func Parse(data []byte) (*Store, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	s := &Store{
		records:   make(map[compound.Identifier]*Record),
		byType:    make(map[string][]*Record),
		relations: make(map[string]map[string]bool),
		targets:   make(map[string]map[string]string),
	}
	for i, rec := range f.Resources {
		if rec == nil || rec.Type == "" || rec.ID == "" {
			return nil, fmt.Errorf("%w: resource %d needs a type and an id", ErrInvalidFixture, i)
		}

		key := compound.Identifier{Type: rec.Type, ID: rec.ID}
		if _, dup := s.records[key]; dup {
			return nil, fmt.Errorf("%w: duplicate resource %s", ErrInvalidFixture, key)
		}
		for name, rel := range rec.Relationships {
			for _, ref := range rel.Refs {
				if ref.Type == "" || ref.ID == "" {
					return nil, fmt.Errorf("%w: relationship %q of %s needs a type and an id", ErrInvalidFixture, name, key)
				}
			}
		}

		s.records[key] = rec
		s.byType[rec.Type] = append(s.byType[rec.Type], rec)
		if s.relations[rec.Type] == nil {
			s.relations[rec.Type] = make(map[string]bool)
		}
		for name, rel := range rec.Relationships {
			s.relations[rec.Type][name] = s.relations[rec.Type][name] || rel.Many
			for _, ref := range rel.Refs {
				s.noteTarget(rec.Type, name, ref.Type)
			}
		}
	}
	return s, nil
}

// Types returns every resource type in the store, sorted.
func (s *Store) Types() []string {
	return slices.Sorted(maps.Keys(s.byType))
}

// HasType reports whether the store holds records of typ.
func (s *Store) HasType(typ string) bool {
	_, ok := s.byType[typ]
	return ok
}

// Find returns the record with the given identity.
func (s *Store) Find(typ, id string) (*Record, bool) {
	rec, ok := s.records[compound.Identifier{Type: typ, ID: id}]
	return rec, ok
}

// All returns the records of typ in file order.
func (s *Store) All(typ string) []*Record {
	return slices.Clone(s.byType[typ])
}

// Relations returns the relationship names declared by records of typ, sorted.
func (s *Store) Relations(typ string) []string {
	return slices.Sorted(maps.Keys(s.relations[typ]))
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// noteTarget records the type a relation points at. Relations pointing at
// more than one type get no target.
func (s *Store) noteTarget(typ, name, target string) {
	if s.targets[typ] == nil {
		s.targets[typ] = make(map[string]string)
	}
	if seen, ok := s.targets[typ][name]; ok && seen != target {
		target = ""
	}
	s.targets[typ][name] = target
}

// resolve returns the record a ref points at. Dangling refs resolve to a
// record without attributes, which renders as a bare reference.
func (s *Store) resolve(ref Ref) *Record {
	if rec, ok := s.Find(ref.Type, ref.ID); ok {
		return rec
	}
	return &Record{Type: ref.Type, ID: ref.ID}
}
