package compound

import (
	"encoding/json"
	"maps"

	"github.com/DataDog/jsonapi"
	"go.uber.org/zap"
)

// Document is a JSON:API top-level document under construction.
//
// Setting primary data collects the included resources as a side effect. Links,
// meta, errors and further included resources may be added at any time before
// rendering. Rendering never mutates the document.
type Document struct {
	data     Element
	primary  map[Identifier]struct{}
	included *includedSet
	links    map[string]any
	meta     map[string]any
	errors   []*jsonapi.Error
	fields   Fieldsets
	logger   *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used to trace inclusion. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithFields sets the sparse fieldsets applied when rendering.
func WithFields(fields Fieldsets) Option {
	return func(d *Document) {
		d.fields = fields
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		primary:  make(map[Identifier]struct{}),
		included: newIncludedSet(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetData sets the primary data and collects every resource reachable from it
// into the included section.
//
// Calling SetData again replaces the primary data: included entries that are
// now primary are dropped before the new data is collected.
func (d *Document) SetData(element Element) *Document {
	if isNil(element) {
		d.data = nil
		clear(d.primary)
		return d
	}

	d.data = element
	clear(d.primary)
	for _, res := range element.Resources() {
		d.primary[res.Identifier()] = struct{}{}
	}
	for key := range d.primary {
		d.included.remove(key)
	}

	c := newCollector(d)
	for _, res := range element.Resources() {
		c.expand(res)
	}
	return d
}

// AddIncluded collects the resources reachable through link into the included
// section.
func (d *Document) AddIncluded(link *Relationship) *Document {
	newCollector(d).walk(link)
	return d
}

// AddLink sets a top-level link.
func (d *Document) AddLink(key string, value any) *Document {
	if d.links == nil {
		d.links = make(map[string]any)
	}
	d.links[key] = value
	return d
}

// AddMeta sets a top-level meta entry.
func (d *Document) AddMeta(key string, value any) *Document {
	if d.meta == nil {
		d.meta = make(map[string]any)
	}
	d.meta[key] = value
	return d
}

// SetMeta replaces the top-level meta.
func (d *Document) SetMeta(meta map[string]any) *Document {
	d.meta = meta
	return d
}

// SetErrors replaces the top-level errors. The errors are rendered as given.
func (d *Document) SetErrors(errs []*jsonapi.Error) *Document {
	d.errors = errs
	return d
}

// SetFields sets the sparse fieldsets applied when rendering.
func (d *Document) SetFields(fields Fieldsets) *Document {
	d.fields = fields
	return d
}

// Data returns the primary data, or nil.
func (d *Document) Data() Element { return d.data }

// Included returns the included resources in commit order.
func (d *Document) Included() []*Resource {
	return append([]*Resource(nil), d.included.items...)
}

// IncludedResource returns the included entry for the given identity.
func (d *Document) IncludedResource(typ, id string) (*Resource, bool) {
	return d.included.get(Identifier{Type: typ, ID: id})
}

func (d *Document) isPrimary(key Identifier) bool {
	_, ok := d.primary[key]
	return ok
}

// Payload renders the document into its output structure. Sections without
// content are left empty and omitted when encoded.
func (d *Document) Payload() *Payload {
	p := &Payload{}

	if len(d.links) > 0 {
		p.Links = maps.Clone(d.links)
	}
	if !isNil(d.data) {
		p.Data = d.data.render(d.fields)
	}
	if d.included.len() > 0 {
		p.Included = make([]*ResourceObject, 0, d.included.len())
		for _, res := range d.included.items {
			p.Included = append(p.Included, res.Object(d.fields))
		}
	}
	if len(d.meta) > 0 {
		p.Meta = maps.Clone(d.meta)
	}
	if len(d.errors) > 0 {
		p.Errors = append([]*jsonapi.Error(nil), d.errors...)
	}

	return p
}

// MarshalJSON encodes the rendered document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Payload())
}

// String returns the JSON encoding of the document, or an empty string if it
// cannot be encoded.
func (d *Document) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		d.logger.Error("failed to encode document", zap.Error(err))
		return ""
	}
	return string(b)
}
