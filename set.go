package gridastar

// MembershipSet tracks which cells of a grid belong to a set, keyed by flat
// cell index. Clear is O(1): it bumps the generation instead of touching
// every slot.
type MembershipSet struct {
	stamps     []uint32
	generation uint32
	count      int
}

// NewMembershipSet creates an empty set able to hold indexes in [0, size).
func NewMembershipSet(size int) *MembershipSet {
	return &MembershipSet{
		stamps:     make([]uint32, size),
		generation: 1,
	}
}

// Clear empties the set.
func (s *MembershipSet) Clear() {
	s.count = 0
	s.generation++
	if s.generation == 0 {
		// stamp counter wrapped: old stamps could alias the new generation
		clear(s.stamps)
		s.generation = 1
	}
}

// Add marks index as present. Adding a present index is a no-op.
func (s *MembershipSet) Add(index int) {
	if s.stamps[index] == s.generation {
		return
	}
	s.stamps[index] = s.generation
	s.count++
}

// Remove marks index as absent. Removing an absent index is a no-op.
func (s *MembershipSet) Remove(index int) {
	if s.stamps[index] != s.generation {
		return
	}
	s.stamps[index] = 0
	s.count--
}

func (s *MembershipSet) Contains(index int) bool { return s.stamps[index] == s.generation }

func (s *MembershipSet) Count() int { return s.count }
