package config

import "sort"

var Presets = map[string]map[string]*Config{
	"gaussian": {
		"rw": {
			Sampler: SamplerMetropolis, Target: "gaussian", Proposal: "gaussian",
			Samples: 20000, StepSize: 2.4, Mass: 1, LeapfrogSteps: 1, Chains: 1, BurnIn: 1000, Thin: 1,
		},
		"hmc": {
			Sampler: SamplerHamiltonian, Target: "gaussian", TargetParams: map[string]float64{"dim": 10},
			Samples: 5000, StepSize: 0.3, Mass: 1, LeapfrogSteps: 10, Chains: 1, BurnIn: 200, Thin: 1,
		},
		"box": {
			Sampler: SamplerMetropolis, Target: "gaussian", Proposal: "uniform",
			Samples: 20000, StepSize: 3.0, Mass: 1, LeapfrogSteps: 1, Chains: 4, BurnIn: 1000, Thin: 1,
		},
	},
	"correlated": {
		"rw": {
			Sampler: SamplerMetropolis, Target: "correlated", TargetParams: map[string]float64{"rho": 0.95},
			Proposal: "gaussian", Samples: 50000, StepSize: 0.5, Mass: 1, LeapfrogSteps: 1, Chains: 1, BurnIn: 2000, Thin: 5,
		},
		"hmc": {
			Sampler: SamplerHamiltonian, Target: "correlated", TargetParams: map[string]float64{"rho": 0.95},
			Samples: 5000, StepSize: 0.15, Mass: 1, LeapfrogSteps: 20, Chains: 4, BurnIn: 200, Thin: 1,
		},
	},
	"doublewell": {
		"shallow": {
			Sampler: SamplerMetropolis, Target: "doublewell", TargetParams: map[string]float64{"A": 0.5, "B": 1},
			Proposal: "gaussian", Samples: 50000, StepSize: 1.0, Mass: 1, LeapfrogSteps: 1, Chains: 4, BurnIn: 1000, Thin: 1,
			InitialState: []float64{1},
		},
		"deep": {
			Sampler: SamplerMetropolis, Target: "doublewell", TargetParams: map[string]float64{"A": 4, "B": 1},
			Proposal: "gaussian", Samples: 50000, StepSize: 0.3, Mass: 1, LeapfrogSteps: 1, Chains: 4, BurnIn: 1000, Thin: 1,
			InitialState: []float64{1},
		},
	},
	"banana": {
		"rw": {
			Sampler: SamplerMetropolis, Target: "banana", TargetParams: map[string]float64{"b": 0.5},
			Proposal: "gaussian", Samples: 50000, StepSize: 0.8, Mass: 1, LeapfrogSteps: 1, Chains: 1, BurnIn: 2000, Thin: 1,
		},
		"hmc": {
			Sampler: SamplerHamiltonian, Target: "banana", TargetParams: map[string]float64{"b": 0.5},
			Samples: 10000, StepSize: 0.1, Mass: 1, LeapfrogSteps: 25, Chains: 4, BurnIn: 500, Thin: 1,
		},
	},
	"exponential": {
		"rw": {
			Sampler: SamplerMetropolis, Target: "exponential", TargetParams: map[string]float64{"rate": 1},
			Proposal: "gaussian", Samples: 20000, StepSize: 1.5, Mass: 1, LeapfrogSteps: 1, Chains: 1, BurnIn: 500, Thin: 1,
			InitialState: []float64{1},
		},
	},
	"studentt": {
		"heavy": {
			Sampler: SamplerMetropolis, Target: "studentt", TargetParams: map[string]float64{"nu": 3},
			Proposal: "gaussian", Samples: 50000, StepSize: 2.5, Mass: 1, LeapfrogSteps: 1, Chains: 4, BurnIn: 1000, Thin: 1,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(target, preset string) *Config {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	cfg, ok := targetPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(target string) []string {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(targetPresets))
	for name := range targetPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
