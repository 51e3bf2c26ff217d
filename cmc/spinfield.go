package cmc

// SpinField owns the ordered sequence of N spins and each site's immutable
// material index. Site count is fixed for the lifetime of a run; there is
// no concurrent-writer support, matching the single-driver-owns-it
// ownership model.
type SpinField struct {
	spins    []Spin
	material []int
}

// NewSpinField builds a field of len(materialIndex) sites, each carrying
// the given material index. All spins start at the zero vector; NewDriver
// then sets every spin along the constraint direction.
func NewSpinField(materialIndex []int) *SpinField {
	f := &SpinField{
		spins:    make([]Spin, len(materialIndex)),
		material: make([]int, len(materialIndex)),
	}
	copy(f.material, materialIndex)
	return f
}

// Len returns the site count N.
func (f *SpinField) Len() int {
	return len(f.spins)
}

// Get reads the spin at site i.
func (f *SpinField) Get(i int) Spin {
	return f.spins[i]
}

// Set writes the spin at site i. The caller is responsible for ‖s‖ = 1.
func (f *SpinField) Set(i int, s Spin) {
	f.spins[i] = s
}

// Snapshot reads the spin at site i; it is semantically identical to Get
// but names the provisional-move use case CMCStep relies on.
func (f *SpinField) Snapshot(i int) Spin {
	return f.spins[i]
}

// Restore writes s back to site i, reverting a provisional move.
func (f *SpinField) Restore(i int, s Spin) {
	f.spins[i] = s
}

// Material returns the immutable material index of site i.
func (f *SpinField) Material(i int) int {
	return f.material[i]
}

// Sum returns Σᵢ sᵢ, used by tests to check running-magnetization
// consistency against the driver's incrementally maintained M.
func (f *SpinField) Sum() Spin {
	var total Spin
	for _, s := range f.spins {
		total = total.Add(s)
	}
	return total
}
