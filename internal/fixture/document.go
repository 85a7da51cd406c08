package fixture

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/compound/pkg/compound"
	"github.com/conduit-lang/compound/pkg/serializer"
	"github.com/conduit-lang/compound/pkg/web/query"
)

// Document builds the compound document for a request on typ, or on the single
// record typ/id when id is not empty.
//
// Filters and sorting apply to collections only. Unknown include paths, filter
// and sort fields are reported as
// *query.InvalidParameterError; unknown types and ids as ErrNotFound.
func (s *Store) Document(typ, id string, params query.Params, opts ...compound.Option) (*compound.Document, error) {
	if !s.HasType(typ) {
		return nil, fmt.Errorf("%w: type %q", ErrNotFound, typ)
	}

	tree := serializer.ParseIncludes(params.Include)
	opts = append(opts, compound.WithFields(params.Fields))
	doc := compound.NewDocument(opts...)

	if id != "" {
		rec, ok := s.Find(typ, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrNotFound, typ, id)
		}
		res, err := serializer.Resource(rec, s.Serializer(), tree)
		if err != nil {
			return nil, includeError(err)
		}
		return doc.SetData(res).AddLink("self", "/"+typ+"/"+id), nil
	}

	records, err := Filter(s.All(typ), params.Filter)
	if err != nil {
		return nil, err
	}
	if err := Sort(records, params.Sort); err != nil {
		return nil, err
	}
	collection, err := serializer.Collection(records, s.Serializer(), tree)
	if err != nil {
		return nil, includeError(err)
	}
	return doc.SetData(collection).
		AddLink("self", "/"+typ).
		AddMeta("total", collection.Len()), nil
}

// includeError turns an unknown relationship into an invalid include parameter.
func includeError(err error) error {
	var relErr *serializer.UnknownRelationshipError
	if errors.As(err, &relErr) {
		return fmt.Errorf("%w: %w", &query.InvalidParameterError{Parameter: "include", Value: relErr.Path}, err)
	}
	return err
}
