package hamiltonian

// Neighbors is a static CSR-style adjacency: site i's neighbours are
// Indices[Offsets[i]:Offsets[i+1]]. It is supplied by the caller; this
// package performs no geometry generation of its own.
type Neighbors struct {
	Offsets []int
	Indices []int
}

// Of returns the neighbour indices of site i.
func (n Neighbors) Of(i int) []int {
	return n.Indices[n.Offsets[i]:n.Offsets[i+1]]
}

// NewNeighbors builds a Neighbors from a plain adjacency list, one slice
// of neighbour indices per site.
func NewNeighbors(adjacency [][]int) Neighbors {
	offsets := make([]int, len(adjacency)+1)
	var indices []int
	for i, nbrs := range adjacency {
		offsets[i] = len(indices)
		indices = append(indices, nbrs...)
	}
	offsets[len(adjacency)] = len(indices)
	return Neighbors{Offsets: offsets, Indices: indices}
}
