// Package hamiltonian provides a reference EnergyOracle — nearest-neighbour
// exchange, uniaxial anisotropy, and a Zeeman field — so the cmc package
// is runnable end-to-end without an external atomistic-simulation
// collaborator. Neighbour lists are supplied directly as adjacency data;
// there is no file-based exchange-list format here.
package hamiltonian
