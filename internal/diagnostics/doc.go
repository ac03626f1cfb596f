// Package diagnostics provides convergence and efficiency checks for
// sample chains.
//
//   - [Thin]: burn-in removal and thinning
//   - [Summarize]: mean, variance, effective sample size, standard error
//   - [Autocorrelation]: FFT-based autocorrelation function
//   - [EffectiveSampleSize]: Geyer initial positive sequence estimate
//   - [RHat]: Gelman-Rubin potential scale reduction across chains
//
// # Convergence
//
// R-hat close to 1 across several independent chains is necessary, not
// sufficient, evidence of convergence:
//
//	r := diagnostics.RHat(traces)
//	if r > 1.01 {
//	    // chains disagree, sample longer
//	}
package diagnostics
