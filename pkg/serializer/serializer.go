// Package serializer builds compound resources from domain models.
//
// Each resource type has a Serializer that knows its type name, how to read the
// id and attributes of a model, and which relations lead to other models. An
// include Tree decides which relations are attached: only requested relations
// become relationships, so only they are followed into the included section.
package serializer

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/compound/pkg/compound"
)

var (
	// ErrUnknownRelationship is returned when an include path names a relation
	// the serializer does not define
	ErrUnknownRelationship = errors.New("unknown relationship")

	// ErrInvalidModel is returned when a relation resolves to a value of the wrong shape
	ErrInvalidModel = errors.New("invalid model")
)

// UnknownRelationshipError reports the include path that named an unknown relation.
type UnknownRelationshipError struct {
	Path string
	Type string
}

// Error implements the error interface
func (e *UnknownRelationshipError) Error() string {
	return fmt.Sprintf("%s: %q on %s", ErrUnknownRelationship, e.Path, e.Type)
}

// Is reports whether target is ErrUnknownRelationship
func (e *UnknownRelationshipError) Is(target error) bool {
	return target == ErrUnknownRelationship
}

// Serializer maps models to compound resources.
//
// Include paths continuing below a null or empty relation are still checked:
// Type and Relation are then called with a nil model and answer for the type
// the serializer stands for.
type Serializer interface {
	Type(model any) string
	ID(model any) string
	Attributes(model any) map[string]any
	// Relation returns the named relation of model, or false if model has no
	// such relation.
	Relation(model any, name string) (Relation, bool)
}

// Relations is a fixed set of relations, for serializers whose relations do
// not depend on the model.
type Relations map[string]Relation

// Lookup returns the named relation.
func (r Relations) Lookup(name string) (Relation, bool) {
	rel, ok := r[name]
	return rel, ok
}

// Relation describes how to reach related models from a model.
type Relation struct {
	// Serializer serializes the related models
	Serializer Serializer
	// Many is true for to-many relations
	Many bool
	// Resolve returns the related model (to-one) or a []any of models (to-many).
	// A nil result is a null or empty relation.
	Resolve func(model any) any
}

// HasOne builds a to-one relation from a typed accessor.
func HasOne[T, R any](s Serializer, fn func(T) R) Relation {
	return Relation{
		Serializer: s,
		Resolve: func(model any) any {
			m, ok := model.(T)
			if !ok {
				return nil
			}
			return fn(m)
		},
	}
}

// HasMany builds a to-many relation from a typed accessor.
func HasMany[T, R any](s Serializer, fn func(T) []R) Relation {
	return Relation{
		Serializer: s,
		Many:       true,
		Resolve: func(model any) any {
			m, ok := model.(T)
			if !ok {
				return nil
			}
			related := fn(m)
			out := make([]any, 0, len(related))
			for _, r := range related {
				out = append(out, r)
			}
			return out
		},
	}
}

// Resource builds the resource for model and, following tree, its requested
// relationships. A nil model yields a nil resource.
func Resource(model any, s Serializer, tree Tree) (*compound.Resource, error) {
	return build(model, s, tree, "")
}

// Collection builds a collection with one resource per model.
func Collection[T any](models []T, s Serializer, tree Tree) (*compound.Collection, error) {
	c := compound.NewCollection()
	for _, m := range models {
		r, err := build(m, s, tree, "")
		if err != nil {
			return nil, err
		}
		c.Add(r)
	}
	return c, nil
}

func build(model any, s Serializer, tree Tree, path string) (*compound.Resource, error) {
	if isNilModel(model) {
		return nil, validate(s, tree, path)
	}

	r := compound.NewResource(s.Type(model), s.ID(model)).WithAttributes(s.Attributes(model))

	for _, name := range tree.Names() {
		childPath := joinPath(path, name)
		relation, ok := s.Relation(model, name)
		if !ok {
			return nil, &UnknownRelationshipError{Path: childPath, Type: r.Type()}
		}

		rel, err := buildRelationship(model, name, relation, tree[name], childPath)
		if err != nil {
			return nil, err
		}
		r.AddRelationship(rel)
	}
	return r, nil
}

func buildRelationship(model any, name string, relation Relation, tree Tree, path string) (*compound.Relationship, error) {
	related := relation.Resolve(model)

	if !relation.Many {
		res, err := build(related, relation.Serializer, tree, path)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return compound.NewRelationship(name, nil), nil
		}
		return compound.NewRelationship(name, res), nil
	}

	c := compound.NewCollection()
	if related == nil {
		return compound.NewRelationship(name, c), validate(relation.Serializer, tree, path)
	}
	models, ok := related.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: to-many relation %q resolved to %T", ErrInvalidModel, path, related)
	}
	if len(models) == 0 {
		return compound.NewRelationship(name, c), validate(relation.Serializer, tree, path)
	}
	for _, m := range models {
		res, err := build(m, relation.Serializer, tree, path)
		if err != nil {
			return nil, err
		}
		c.Add(res)
	}
	return compound.NewRelationship(name, c), nil
}

// validate checks the names of tree against s without a model.
func validate(s Serializer, tree Tree, path string) error {
	for _, name := range tree.Names() {
		childPath := joinPath(path, name)
		relation, ok := s.Relation(nil, name)
		if !ok {
			return &UnknownRelationshipError{Path: childPath, Type: s.Type(nil)}
		}
		if err := validate(relation.Serializer, tree[name], childPath); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
