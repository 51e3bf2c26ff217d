package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fieldspin/cmc/hamiltonian"
)

// loadNeighbors builds the static adjacency the reference Hamiltonian
// needs. If path is empty, it falls back to a 1D periodic nearest-neighbour
// chain over n sites so the CLI is runnable without any external
// geometry file.
func loadNeighbors(path string, n int) (hamiltonian.Neighbors, error) {
	if path == "" {
		adjacency := make([][]int, n)
		for i := 0; i < n; i++ {
			adjacency[i] = []int{(i - 1 + n) % n, (i + 1) % n}
		}
		return hamiltonian.NewNeighbors(adjacency), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return hamiltonian.Neighbors{}, fmt.Errorf("neighbors: open %s: %w", path, err)
	}
	defer f.Close()

	var raw struct {
		Adjacency [][]int `yaml:"adjacency"`
	}
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
		return hamiltonian.Neighbors{}, fmt.Errorf("neighbors: parse %s: %w", path, err)
	}
	if len(raw.Adjacency) != n {
		return hamiltonian.Neighbors{}, fmt.Errorf("neighbors: %s declares %d sites, want %d", path, len(raw.Adjacency), n)
	}
	return hamiltonian.NewNeighbors(raw.Adjacency), nil
}
