package compound

import "github.com/DataDog/jsonapi"

// Payload is the output structure of a document. Encoded with encoding/json,
// map keys (and so link keys) come out sorted.
type Payload struct {
	Links    map[string]any    `json:"links,omitempty"`
	Data     any               `json:"data,omitempty"`
	Included []*ResourceObject `json:"included,omitempty"`
	Meta     map[string]any    `json:"meta,omitempty"`
	Errors   []*jsonapi.Error  `json:"errors,omitempty"`
}

// ResourceObject is a rendered resource.
type ResourceObject struct {
	Type          string                         `json:"type"`
	ID            string                         `json:"id"`
	Attributes    map[string]any                 `json:"attributes,omitempty"`
	Relationships map[string]*RelationshipObject `json:"relationships,omitempty"`
	Links         map[string]any                 `json:"links,omitempty"`
	Meta          map[string]any                 `json:"meta,omitempty"`
}

// RelationshipObject is a rendered relationship. Data holds the resource
// linkage: an *Identifier, a []Identifier, or nil for a null relationship.
type RelationshipObject struct {
	Data  any            `json:"data"`
	Links map[string]any `json:"links,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}
