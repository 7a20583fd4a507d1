package entities

// Selection is an insertion-ordered set of bundle item ids.
//
// The zero value is an empty selection ready to use.
type Selection struct {
	ids   []string
	index map[string]struct{}
}

func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends id and reports whether it was not already present.
func (s *Selection) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *Selection) Remove(id string) bool {
	if !s.Contains(id) {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

// Truncate keeps the n earliest ids and reports whether anything was dropped.
func (s *Selection) Truncate(n int) bool {
	if n < 0 {
		n = 0
	}
	if len(s.ids) <= n {
		return false
	}
	for _, id := range s.ids[n:] {
		delete(s.index, id)
	}
	s.ids = s.ids[:n]
	return true
}

func (s *Selection) Clear() {
	s.ids = nil
	s.index = nil
}

// IDs returns a copy of the ids in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Equal reports whether both selections hold the same ids in the same order.
func (s *Selection) Equal(other *Selection) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for i := range s.ids {
		if s.ids[i] != other.ids[i] {
			return false
		}
	}
	return true
}
