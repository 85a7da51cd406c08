package compound

// includedSet is the ordered set of included resources, keyed by identity and
// iterated in commit order.
type includedSet struct {
	index map[Identifier]int
	items []*Resource
}

func newIncludedSet() *includedSet {
	return &includedSet{index: make(map[Identifier]int)}
}

func (s *includedSet) get(key Identifier) (*Resource, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

func (s *includedSet) add(r *Resource) {
	s.index[r.Identifier()] = len(s.items)
	s.items = append(s.items, r)
}

func (s *includedSet) remove(key Identifier) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Identifier()] = j
	}
	return true
}

func (s *includedSet) len() int { return len(s.items) }
