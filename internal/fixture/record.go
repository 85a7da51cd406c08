// Package fixture loads resource graphs from YAML files and serves compound
// documents from them.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ref points at another record by type and id.
type Ref struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

// RelationRef is the value of a relationship in a fixture: a single ref, a
// list of refs, or null.
type RelationRef struct {
	Many bool
	Refs []Ref
}

// UnmarshalYAML accepts a mapping (to-one) or a sequence (to-many). Null
// values never reach this method and leave a null to-one relation.
func (r *RelationRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var ref Ref
		if err := value.Decode(&ref); err != nil {
			return err
		}
		r.Many = false
		r.Refs = []Ref{ref}
	case yaml.SequenceNode:
		var refs []Ref
		if err := value.Decode(&refs); err != nil {
			return err
		}
		r.Many = true
		r.Refs = refs
	default:
		return fmt.Errorf("line %d: relationship must be a mapping, a sequence or null", value.Line)
	}
	return nil
}

// Record is one resource of a fixture file.
type Record struct {
	Type          string                 `yaml:"type"`
	ID            string                 `yaml:"id"`
	Attributes    map[string]any         `yaml:"attributes"`
	Relationships map[string]RelationRef `yaml:"relationships"`
}

// file is the top-level layout of a fixture file.
type file struct {
	Resources []*Record `yaml:"resources"`
}

// value returns the id for "id" and the named attribute otherwise.
func (r *Record) value(field string) any {
	if field == "id" {
		return r.ID
	}
	return r.Attributes[field]
}
