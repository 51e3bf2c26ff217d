// Package config loads and validates the RunConfig a CLI or other caller
// uses to construct a cmc.Driver: the geometry and seed the core needs,
// plus the surrounding settings (materials, neighbours, snapshotting,
// logging) a real deployment needs.
package config

import (
	"fmt"
	"io"
	"math"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RunConfig is the full set of inputs to a run, validated with struct
// tags (go-playground/validator) so a malformed file surfaces as
// InvalidConfig at load time rather than mid-sweep.
type RunConfig struct {
	SiteCount      int     `yaml:"site_count" validate:"required,gt=0"`
	PhiDeg         float64 `yaml:"phi_deg" validate:"finite"`
	ThetaDeg       float64 `yaml:"theta_deg" validate:"finite"`
	TemperatureK   float64 `yaml:"temperature_k" validate:"gt=0"`
	Seed           int64   `yaml:"seed"`
	Sweeps         int     `yaml:"sweeps" validate:"required,gt=0"`
	MaterialsPath  string  `yaml:"materials_path" validate:"required"`
	NeighborsPath  string  `yaml:"neighbors_path"`
	SnapshotOutput string  `yaml:"snapshot_output"`
	LogLevel       string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// ShortCircuitNegativeDeltaE opts into accepting any trial move with
	// ΔE < 0 outright, skipping the geometric-weight evaluation. The
	// default (false) always runs the full acceptance evaluation.
	ShortCircuitNegativeDeltaE bool `yaml:"short_circuit_negative_delta_e"`

	// Exchange/anisotropy/Zeeman parameters for the reference
	// Hamiltonian (hamiltonian.Reference); zero values disable the
	// corresponding term.
	ExchangeJ    float64    `yaml:"exchange_j"`
	AnisotropyKu float64    `yaml:"anisotropy_ku"`
	EasyAxis     [3]float64 `yaml:"easy_axis"`
	ZeemanFieldT [3]float64 `yaml:"zeeman_field_t"`
	ReplicaCount int        `yaml:"replica_count" validate:"omitempty,gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Load parses and validates a RunConfig from YAML.
func Load(r io.Reader) (RunConfig, error) {
	var cfg RunConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: %w: %v", ErrInvalidConfig, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: %w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}
