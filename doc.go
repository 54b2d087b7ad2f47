// Package slse measures how far apart two graphs are through their spectra.
//
// Each graph Laplacian L is turned into a density matrix
//
//	ρ = exp(−βL) / Tr exp(−βL)
//
// (the heat-kernel state at diffusion scale β), and two graphs are compared
// by the quantum relative entropy D(ρ1‖ρ2) = Tr ρ1(log ρ1 − log ρ2).
//
// 🚀 Layout (leaves first):
//
//	matrix/     — owned Dense buffer, shape/finite/symmetry validators, Jacobi eigen kernel
//	spectral/   — Decompose: symmetric eigen-decomposition with relative tolerance
//	density/    — Build: stable log-sum-exp density matrix + von Neumann entropy
//	divergence/ — Engine interface; CPU and Accelerated backends; error kinds
//	config/     — viper-backed settings (file + SLSE_* env)
//	logging/    — logr over zap
//	metrics/    — Prometheus collectors for engine calls
//
// Quick example:
//
//	path, _ := matrix.NewFromRows([][]float64{{1, -1, 0}, {-1, 2, -1}, {0, -1, 1}})
//	star, _ := matrix.NewFromRows([][]float64{{2, -1, -1}, {-1, 1, 0}, {-1, 0, 1}})
//	d, err := divergence.KLDivergence(path, star, 1.0)
//
// Build with -tags noaccel to compile the accelerated backend out.
package slse
