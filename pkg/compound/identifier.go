package compound

// Identifier is the logical identity of a resource. Two resources with equal
// identifiers are the same resource, whatever attributes they carry.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// String returns "type:id".
func (i Identifier) String() string {
	return i.Type + ":" + i.ID
}
