package ecs

// SparseSet stores one component type keyed by entity slot. Values are kept
// densely so iteration touches only entities that have the component.
type SparseSet struct {
	dense  []Entity
	values []any
	// sparse maps a slot id to its dense index plus one; zero means absent.
	sparse []int
}

func (s *SparseSet) index(id entityID) (int, bool) {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	i := s.sparse[id-1]
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// Has reports whether e's slot has a value. The generation is checked too so
// a reused slot never sees the previous owner's component.
func (s *SparseSet) Has(e Entity) bool {
	i, ok := s.index(e.id())
	return ok && s.dense[i] == e
}

// Get returns e's value or nil.
func (s *SparseSet) Get(e Entity) any {
	i, ok := s.index(e.id())
	if !ok || s.dense[i] != e {
		return nil
	}
	return s.values[i]
}

// Set inserts or replaces e's value.
func (s *SparseSet) Set(e Entity, v any) {
	id := e.id()
	if id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	if i, ok := s.index(id); ok {
		s.dense[i] = e
		s.values[i] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense)
}

// Remove deletes e's value, moving the last value into its place.
func (s *SparseSet) Remove(e Entity) bool {
	i, ok := s.index(e.id())
	if !ok || s.dense[i] != e {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[i] = moved
	s.values[i] = s.values[last]
	s.sparse[moved.id()-1] = i + 1

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = 0
	return true
}

// Len is the number of stored values.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the entities in dense order. The slice is shared.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}
