package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mcsim/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func TestResolveConfigPrecedence(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, run.ParseFlags([]string{"--preset", "hmc", "--samples", "50", "--param", "mu=2"}))

	envSamples, envStep := 77, 0.9
	cfg, err := resolveConfig(run, []string{"gaussian"}, config.Env{Samples: &envSamples, StepSize: &envStep})
	require.NoError(t, err)

	assert.Equal(t, config.SamplerHamiltonian, cfg.Sampler, "preset")
	assert.Equal(t, 50, cfg.Samples, "flag beats env")
	assert.Equal(t, 0.9, cfg.StepSize, "env beats preset")
	assert.Equal(t, map[string]float64{"dim": 10, "mu": 2}, cfg.TargetParams)
	assert.NotZero(t, cfg.Seed)

	assert.NotContains(t, config.Presets["gaussian"]["hmc"].TargetParams, "mu")
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, run.ParseFlags([]string{"--preset", "nope"}))

	_, err = resolveConfig(run, []string{"gaussian"}, config.Env{})
	assert.Error(t, err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams(map[string]string{"rho": "0.5", "dim": "3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"rho": 0.5, "dim": 3}, params)

	_, err = parseParams(map[string]string{"rho": "high"})
	assert.Error(t, err)
}

var runIDPattern = regexp.MustCompile(`run id: (\S+)`)

func TestRunThenInspect(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			t.Setenv("MCSIM_DATA_DIR", t.TempDir())
			t.Setenv("MCSIM_STORE", backend)
			t.Setenv("MCSIM_LOG_LEVEL", "error")

			out := execute(t, "run", "gaussian", "--samples", "300", "--seed", "7", "--chains", "2", "--step", "1.5")
			m := runIDPattern.FindStringSubmatch(out)
			require.Len(t, m, 2, out)
			id := m[1]

			assert.Contains(t, execute(t, "list"), id)
			assert.Contains(t, execute(t, "diagnose", id), "r-hat")
			assert.Contains(t, execute(t, "plot", id), "gaussian metropolis x0")
			assert.Contains(t, execute(t, "acf", id, "--lags", "10"), "autocorrelation x0")
		})
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("MCSIM_DATA_DIR", t.TempDir())
	t.Setenv("MCSIM_LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "gaussian", "--samples", "0", "--no-save"})
	assert.Error(t, root.Execute())
}

func TestIntegrateAndPresets(t *testing.T) {
	t.Setenv("MCSIM_LOG_LEVEL", "error")

	out := execute(t, "integrate", "gaussian", "--dt", "0.1", "--steps", "50")
	assert.Contains(t, out, "max relative drift")

	assert.Contains(t, execute(t, "presets", "gaussian"), "hmc")
	assert.Contains(t, execute(t, "inverse", "exponential", "--n", "500", "--seed", "3"), "500 independent draws")
}
