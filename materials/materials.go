// Package materials loads the materials table an EnergyOracle and Driver
// consult by index: one record per material, exposing a magnetic moment
// μ_s in joules/tesla.
package materials

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// bohrMagneton is μ_B in joules/tesla, used to convert the YAML file's
// mu_s_bohr field into the joules/tesla units cmc.MaterialMoments expects.
const bohrMagneton = 9.27400915e-24

// Material is a read-only record keyed by its position in Table, exposing
// a magnetic moment in joules/tesla.
type Material struct {
	Name     string
	MomentJT float64
}

// Table is an ordered materials list, indexed by material id, implementing
// cmc.MaterialMoments.
type Table struct {
	materials []Material
}

// Len reports the number of materials in the table.
func (t Table) Len() int {
	return len(t.materials)
}

// MomentJPerT returns material m's magnetic moment, in joules/tesla.
func (t Table) MomentJPerT(m int) (float64, error) {
	if m < 0 || m >= len(t.materials) {
		return 0, fmt.Errorf("materials: index %d out of range [0,%d)", m, len(t.materials))
	}
	return t.materials[m].MomentJT, nil
}

// Name returns material m's name, for logging and snapshot metadata.
func (t Table) Name(m int) (string, error) {
	if m < 0 || m >= len(t.materials) {
		return "", fmt.Errorf("materials: index %d out of range [0,%d)", m, len(t.materials))
	}
	return t.materials[m].Name, nil
}

type fileFormat struct {
	Materials []struct {
		Name     string  `yaml:"name"`
		MuSBohr  float64 `yaml:"mu_s_bohr"`
		MuSJPerT float64 `yaml:"mu_s_j_per_t"`
	} `yaml:"materials"`
}

// LoadTable parses a YAML materials document. Each entry's moment may be
// given as mu_s_bohr (Bohr magnetons, converted here) or mu_s_j_per_t
// (joules/tesla, used as-is); a non-zero mu_s_j_per_t takes precedence and
// mu_s_bohr is used only when it is zero. An empty or
// non-positive moment is rejected at load time so a misconfigured table
// fails fast rather than producing silently wrong energies later.
func LoadTable(r io.Reader) (Table, error) {
	var raw fileFormat
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Table{}, fmt.Errorf("materials: parse: %w", err)
	}
	if len(raw.Materials) == 0 {
		return Table{}, fmt.Errorf("materials: no materials declared")
	}

	out := make([]Material, 0, len(raw.Materials))
	for idx, m := range raw.Materials {
		moment := m.MuSJPerT
		if moment == 0 {
			moment = m.MuSBohr * bohrMagneton
		}
		if !(moment > 0) {
			return Table{}, fmt.Errorf("materials: entry %d (%q) has non-positive moment", idx, m.Name)
		}
		out = append(out, Material{Name: m.Name, MomentJT: moment})
	}
	return Table{materials: out}, nil
}
