package materials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTableFromBohrMagnetons(t *testing.T) {
	doc := `
materials:
  - name: Fe
    mu_s_bohr: 2.2
  - name: Co
    mu_s_bohr: 1.7
`
	table, err := LoadTable(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	moment, err := table.MomentJPerT(0)
	require.NoError(t, err)
	assert.InDelta(t, 2.2*bohrMagneton, moment, 1e-30)

	name, err := table.Name(0)
	require.NoError(t, err)
	assert.Equal(t, "Fe", name)
}

func TestLoadTableFromJoulesPerTesla(t *testing.T) {
	doc := `
materials:
  - name: Custom
    mu_s_j_per_t: 1.5e-23
`
	table, err := LoadTable(strings.NewReader(doc))
	require.NoError(t, err)
	moment, err := table.MomentJPerT(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5e-23, moment, 1e-30)
}

func TestLoadTableRejectsNonPositiveMoment(t *testing.T) {
	doc := `
materials:
  - name: Bad
    mu_s_bohr: 0
`
	_, err := LoadTable(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadTableRejectsEmptyList(t *testing.T) {
	_, err := LoadTable(strings.NewReader("materials: []"))
	assert.Error(t, err)
}

func TestMomentOutOfRange(t *testing.T) {
	table, err := LoadTable(strings.NewReader("materials:\n  - name: A\n    mu_s_bohr: 1\n"))
	require.NoError(t, err)
	_, err = table.MomentJPerT(5)
	assert.Error(t, err)
	_, err = table.Name(-1)
	assert.Error(t, err)
}
