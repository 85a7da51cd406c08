package fixture

import (
	"maps"

	"github.com/conduit-lang/compound/pkg/serializer"
)

// recordSerializer serializes records of any type. Relations resolve through
// the store. typ is the related type a relation points at; it answers for
// the missing record of a null relation.
type recordSerializer struct {
	store *Store
	typ   string
}

// Serializer returns a serializer for the records of s.
func (s *Store) Serializer() serializer.Serializer {
	return recordSerializer{store: s}
}

func (rs recordSerializer) Type(model any) string {
	if rec, _ := model.(*Record); rec != nil {
		return rec.Type
	}
	return rs.typ
}

func (rs recordSerializer) ID(model any) string { return model.(*Record).ID }

func (rs recordSerializer) Attributes(model any) map[string]any {
	return maps.Clone(model.(*Record).Attributes)
}

// Relation returns the named relation of a record. A name declared by other
// records of the same type but missing on this one is null, or empty when the
// type declares it as a list anywhere. Records of a type the store has no
// records for only have null relations.
func (rs recordSerializer) Relation(model any, name string) (serializer.Relation, bool) {
	typ := rs.Type(model)
	if !rs.store.HasType(typ) {
		return serializer.Relation{
			Serializer: recordSerializer{store: rs.store},
			Resolve:    func(any) any { return nil },
		}, true
	}

	many, ok := rs.store.relations[typ][name]
	if !ok {
		return serializer.Relation{}, false
	}

	var refs []Ref
	if rec, _ := model.(*Record); rec != nil {
		refs = rec.Relationships[name].Refs
	}
	related := recordSerializer{store: rs.store, typ: rs.store.targets[typ][name]}
	return serializer.Relation{
		Serializer: related,
		Many:       many,
		Resolve: func(any) any {
			if !many {
				if len(refs) == 0 {
					return nil
				}
				return rs.store.resolve(refs[0])
			}
			out := make([]any, 0, len(refs))
			for _, r := range refs {
				out = append(out, rs.store.resolve(r))
			}
			return out
		},
	}, true
}
