package ingest

// NodeMap is a bijection between external node IDs and the dense indices the
// engine computes with. Indices are assigned in first-seen order and are
// stable for the lifetime of a run.
type NodeMap struct {
	indices map[int64]int
	ids     []int64
}

func NewNodeMap() *NodeMap {
	return &NodeMap{indices: make(map[int64]int)}
}

// Add returns the dense index for realID, assigning the next free index if
// the ID has not been seen before.
func (m *NodeMap) Add(realID int64) int {
	if idx, ok := m.indices[realID]; ok {
		return idx
	}
	idx := len(m.ids)
	m.indices[realID] = idx
	m.ids = append(m.ids, realID)
	return idx
}

// Index returns the dense index for realID, if assigned.
func (m *NodeMap) Index(realID int64) (int, bool) {
	idx, ok := m.indices[realID]
	return idx, ok
}

// RealID returns the external ID for a dense index.
func (m *NodeMap) RealID(idx int) int64 {
	return m.ids[idx]
}

// Len returns the number of distinct nodes seen.
func (m *NodeMap) Len() int {
	return len(m.ids)
}

// RealIDs returns the external IDs in dense-index order.
func (m *NodeMap) RealIDs() []int64 {
	out := make([]int64, len(m.ids))
	copy(out, m.ids)
	return out
}
