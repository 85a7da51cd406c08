package compound

// Collection is an ordered group of resources, used as plural primary data and
// as the target of to-many relationships.
type Collection struct {
	resources []*Resource
}

// NewCollection creates a collection holding resources in order. Nil entries
// are skipped.
func NewCollection(resources ...*Resource) *Collection {
	c := &Collection{resources: make([]*Resource, 0, len(resources))}
	c.Add(resources...)
	return c
}

// Add appends resources to the collection.
func (c *Collection) Add(resources ...*Resource) *Collection {
	for _, r := range resources {
		if r != nil {
			c.resources = append(c.resources, r)
		}
	}
	return c
}

// Len returns the number of resources.
func (c *Collection) Len() int { return len(c.resources) }

// Resources returns the resources of the collection in insertion order.
func (c *Collection) Resources() []*Resource {
	if c == nil {
		return nil
	}
	return c.resources
}

func (c *Collection) render(fields Fieldsets) any {
	out := make([]*ResourceObject, 0, len(c.resources))
	for _, r := range c.resources {
		out = append(out, r.Object(fields))
	}
	return out
}

func (c *Collection) linkage() any {
	out := make([]Identifier, 0, len(c.resources))
	for _, r := range c.resources {
		out = append(out, r.Identifier())
	}
	return out
}
