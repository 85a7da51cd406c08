package compound

import "go.uber.org/zap"

// collector runs one inclusion pass over a document.
//
// A pass walks relationships depth first. The related resources of a
// relationship are expanded (their own relationships walked) before they are
// filtered and committed, so a chain A -> B -> C commits C before B.
//
// Two guards keep a pass finite on cyclic graphs:
//   - expanding holds the identities whose relationships are being walked on
//     the current call chain; reaching one of them again does not recurse.
//   - walked holds every relationship already walked during the pass. A
//     relationship is walked at most once, which also bounds the walks
//     triggered by merges.
type collector struct {
	doc       *Document
	expanding map[Identifier]struct{}
	walked    map[*Relationship]struct{}
	logger    *zap.Logger
}

func newCollector(doc *Document) *collector {
	return &collector{
		doc:       doc,
		expanding: make(map[Identifier]struct{}),
		walked:    make(map[*Relationship]struct{}),
		logger:    doc.logger,
	}
}

// walk gathers the resources reachable through rel into the included set.
func (c *collector) walk(rel *Relationship) {
	if rel == nil {
		return
	}
	if _, ok := c.walked[rel]; ok {
		return
	}
	c.walked[rel] = struct{}{}

	resources := rel.Resources()
	if len(resources) == 0 {
		return
	}

	candidates := make([]*Resource, 0, len(resources))
	for _, res := range resources {
		if res == nil {
			continue
		}
		c.expand(res)

		if !res.HasAttributes() {
			c.logger.Debug("skipping bare reference",
				zap.Stringer("resource", res.Identifier()),
				zap.String("relationship", rel.name))
			// expand skips a busy identity, and a bare reference is never
			// committed, so its own relationships are walked here.
			for _, nested := range res.relationships {
				c.walk(nested)
			}
			continue
		}
		candidates = append(candidates, res)
	}

	for _, res := range candidates {
		c.commit(res)
	}
}

// expand walks every relationship of res unless res is already being expanded
// further up the call chain.
func (c *collector) expand(res *Resource) {
	key := res.Identifier()
	if _, busy := c.expanding[key]; busy {
		c.logger.Debug("cycle detected, not expanding again", zap.Stringer("resource", key))
		return
	}

	c.expanding[key] = struct{}{}
	defer delete(c.expanding, key)

	for _, rel := range res.relationships {
		c.walk(rel)
	}
}

// commit adds res to the included set, or merges it into the entry already
// present for its identity. Primary resources are never included.
//
// The relationships of res are walked afterwards: those already walked are
// skipped, the rest are the ones expand could not reach because of the cycle
// guard, or that a merge brought into an existing entry.
func (c *collector) commit(res *Resource) {
	key := res.Identifier()

	switch existing, ok := c.doc.included.get(key); {
	case c.doc.isPrimary(key):
		c.logger.Debug("resource is primary data, not including", zap.Stringer("resource", key))
	case ok:
		adopted := existing.merge(res)
		c.logger.Debug("merged duplicate resource",
			zap.Stringer("resource", key),
			zap.Int("adopted_relationships", len(adopted)))
	default:
		c.doc.included.add(res.clone())
	}

	for _, rel := range res.relationships {
		c.walk(rel)
	}
}
