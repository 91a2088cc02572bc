package model

// Pool interns vertices, assigning each distinct attribute tuple a stable index
// in first-occurrence order. A Pool belongs to a single mesh construction and is
// not safe for concurrent use.
type Pool struct {
	vertices []Vertex
	keys     []VertexKey
	buckets  map[uint64][]uint32
}

// NewPool creates a pool pre-sized for capacity vertices. Pass the source's raw
// vertex count.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{
		vertices: make([]Vertex, 0, capacity),
		keys:     make([]VertexKey, 0, capacity),
		buckets:  make(map[uint64][]uint32, capacity),
	}
}

// Intern returns the index of v, appending it on first occurrence.
func (p *Pool) Intern(v Vertex) uint32 {
	key := v.Key()
	h := v.Hash()

	for _, idx := range p.buckets[h] {
		if p.keys[idx] == key {
			return idx
		}
	}

	idx := uint32(len(p.vertices))
	p.vertices = append(p.vertices, v)
	p.keys = append(p.keys, key)
	p.buckets[h] = append(p.buckets[h], idx)
	return idx
}

// Len returns the number of unique vertices.
func (p *Pool) Len() int {
	return len(p.vertices)
}

// Vertices returns the unique vertices in first-occurrence order.
// The slice is owned by the pool until the pool is discarded.
func (p *Pool) Vertices() []Vertex {
	return p.vertices
}
