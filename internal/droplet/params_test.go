package droplet

import (
	"errors"
	"testing"

	"github.com/san-kum/flashboil/internal/flash"
)

func TestDefaultParamsAreValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateNamesOffendingParam(t *testing.T) {
	cases := []struct {
		name   string
		param  string
		mutate func(*Params)
	}{
		{"radius too small", "initial_radius", func(p *Params) { p.InitialRadius = 0.05e-3 }},
		{"radius too large", "initial_radius", func(p *Params) { p.InitialRadius = 20e-3 }},
		{"temperature too low", "initial_temperature", func(p *Params) { p.InitialTemp = 250 }},
		{"temperature too high", "initial_temperature", func(p *Params) { p.InitialTemp = 500 }},
		{"pressure too low", "ambient_pressure", func(p *Params) { p.AmbientPressure = 50 }},
		{"pressure above atmospheric", "ambient_pressure", func(p *Params) { p.AmbientPressure = 2e5 }},
		{"alpha zero", "alpha", func(p *Params) { p.Alpha = 0 }},
		{"nucleation factor negative", "nucleation_factor", func(p *Params) { p.NucleationFactor = -1 }},
		{"fragmentation superheat too low", "fragmentation_superheat", func(p *Params) { p.FragSuperheat = 5 }},
		{"onset negative", "nucleation_onset", func(p *Params) { p.NucleationOnset = -1 }},
		{"onset above fragmentation", "nucleation_onset", func(p *Params) {
			p.NucleationOnset = 40
			p.FragSuperheat = 30
		}},
		{"specific heat zero", "specific_heat", func(p *Params) { p.SpecificHeat = 0 }},
		{"negative convection coefficient", "convection_coeff", func(p *Params) {
			p.Convection = true
			p.ConvectionCoeff = -5
		}},
		{"ambient temperature out of range", "ambient_temperature", func(p *Params) {
			p.Convection = true
			p.AmbientTemp = 100
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ce *flash.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if ce.Param != tc.param {
				t.Errorf("error names %q, expected %q", ce.Param, tc.param)
			}
		})
	}
}
