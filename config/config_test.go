package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() string {
	return `
site_count: 100
phi_deg: 45
theta_deg: 30
temperature_k: 300
seed: 7
sweeps: 10
materials_path: materials.yaml
log_level: info
`
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(strings.NewReader(validDoc()))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.SiteCount)
	assert.Equal(t, 45.0, cfg.PhiDeg)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := validDoc() + "\nbogus_field: 1\n"
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsNonPositiveTemperature(t *testing.T) {
	doc := strings.Replace(validDoc(), "temperature_k: 300", "temperature_k: 0", 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsZeroSiteCount(t *testing.T) {
	doc := strings.Replace(validDoc(), "site_count: 100", "site_count: 0", 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsMissingMaterialsPath(t *testing.T) {
	doc := strings.Replace(validDoc(), "materials_path: materials.yaml", "", 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	doc := strings.Replace(validDoc(), "log_level: info", "log_level: verbose", 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFiniteValidatorRejectsNaNAngle(t *testing.T) {
	doc := strings.Replace(validDoc(), "phi_deg: 45", "phi_deg: .nan", 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
