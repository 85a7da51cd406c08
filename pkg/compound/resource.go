package compound

import "maps"

// Resource is a single JSON:API resource object.
//
// Resources are referenced, not owned, by collections and relationships: the
// same *Resource may be reachable from several parents.
type Resource struct {
	typ           string
	id            string
	attributes    map[string]any
	relationships []*Relationship
	links         map[string]any
	meta          map[string]any
}

// NewResource creates a resource with the given type and id and no attributes.
func NewResource(typ, id string) *Resource {
	return &Resource{
		typ:        typ,
		id:         id,
		attributes: make(map[string]any),
	}
}

// Type returns the resource type.
func (r *Resource) Type() string { return r.typ }

// ID returns the resource id.
func (r *Resource) ID() string { return r.id }

// Identifier returns the (type, id) pair of the resource.
func (r *Resource) Identifier() Identifier {
	return Identifier{Type: r.typ, ID: r.id}
}

// Attributes returns the attribute map. The map is shared with the resource.
func (r *Resource) Attributes() map[string]any { return r.attributes }

// HasAttributes reports whether the resource carries any attribute. A resource
// without attributes is a bare reference.
func (r *Resource) HasAttributes() bool { return len(r.attributes) > 0 }

// Relationships returns the relationships of the resource in declaration order.
func (r *Resource) Relationships() []*Relationship { return r.relationships }

// Relationship returns the relationship with the given name, or nil.
func (r *Resource) Relationship(name string) *Relationship {
	for _, rel := range r.relationships {
		if rel.name == name {
			return rel
		}
	}
	return nil
}

// Links returns the resource-level links.
func (r *Resource) Links() map[string]any { return r.links }

// Meta returns the resource-level meta.
func (r *Resource) Meta() map[string]any { return r.meta }

// SetAttribute sets a single attribute.
func (r *Resource) SetAttribute(key string, value any) *Resource {
	if r.attributes == nil {
		r.attributes = make(map[string]any)
	}
	r.attributes[key] = value
	return r
}

// WithAttributes copies attrs into the resource's attributes. Existing keys are
// overwritten.
func (r *Resource) WithAttributes(attrs map[string]any) *Resource {
	if r.attributes == nil {
		r.attributes = make(map[string]any, len(attrs))
	}
	maps.Copy(r.attributes, attrs)
	return r
}

// AddRelationship attaches a relationship. A relationship with the same name
// replaces the existing one in place.
func (r *Resource) AddRelationship(rel *Relationship) *Resource {
	if rel == nil {
		return r
	}
	for i, existing := range r.relationships {
		if existing.name == rel.name {
			r.relationships[i] = rel
			return r
		}
	}
	r.relationships = append(r.relationships, rel)
	return r
}

// SetLink sets a resource-level link.
func (r *Resource) SetLink(key string, value any) *Resource {
	if r.links == nil {
		r.links = make(map[string]any)
	}
	r.links[key] = value
	return r
}

// SetMeta sets a resource-level meta entry.
func (r *Resource) SetMeta(key string, value any) *Resource {
	if r.meta == nil {
		r.meta = make(map[string]any)
	}
	r.meta[key] = value
	return r
}

// Merge folds another observation of the same logical resource into r.
// Attributes, links and meta of other overwrite those of r on collision.
// Relationships of other replace same-named ones and are appended otherwise.
func (r *Resource) Merge(other *Resource) *Resource {
	r.merge(other)
	return r
}

// merge performs Merge and returns the relationships r adopted from other,
// i.e. those that were absent or pointed elsewhere before the merge.
func (r *Resource) merge(other *Resource) []*Relationship {
	if other == nil || other == r {
		return nil
	}

	r.WithAttributes(other.attributes)
	for k, v := range other.links {
		r.SetLink(k, v)
	}
	for k, v := range other.meta {
		r.SetMeta(k, v)
	}

	var adopted []*Relationship
	for _, rel := range other.relationships {
		if existing := r.Relationship(rel.name); existing == rel {
			continue
		}
		r.AddRelationship(rel)
		adopted = append(adopted, rel)
	}
	return adopted
}

// clone returns a shallow copy that owns its maps and relationship slice, so
// later merges do not leak into the original.
func (r *Resource) clone() *Resource {
	c := &Resource{
		typ:        r.typ,
		id:         r.id,
		attributes: maps.Clone(r.attributes),
		links:      maps.Clone(r.links),
		meta:       maps.Clone(r.meta),
	}
	if c.attributes == nil {
		c.attributes = make(map[string]any)
	}
	c.relationships = append([]*Relationship(nil), r.relationships...)
	return c
}

// Resources returns r as a one-element slice.
func (r *Resource) Resources() []*Resource {
	if r == nil {
		return nil
	}
	return []*Resource{r}
}

func (r *Resource) render(fields Fieldsets) any {
	return r.Object(fields)
}

func (r *Resource) linkage() any {
	id := r.Identifier()
	return &id
}

// Object renders the resource into its output structure, applying fields.
func (r *Resource) Object(fields Fieldsets) *ResourceObject {
	obj := &ResourceObject{
		Type:       r.typ,
		ID:         r.id,
		Attributes: fields.filter(r.typ, r.attributes),
		Links:      maps.Clone(r.links),
		Meta:       maps.Clone(r.meta),
	}
	if len(r.relationships) > 0 {
		obj.Relationships = make(map[string]*RelationshipObject, len(r.relationships))
		for _, rel := range r.relationships {
			obj.Relationships[rel.name] = rel.Object()
		}
	}
	return obj
}
