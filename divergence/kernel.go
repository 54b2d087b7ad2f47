// SPDX-License-Identifier: MIT

package divergence

// rowTerm returns row i's share of D(ρ1‖ρ2) in the eigenbasis of ρ1:
//
//	pᵢ·(log pᵢ − Σⱼ Oᵢⱼ²·log qⱼ),  O = U1ᵀ·U2.
//
// p ≤ eps contributes 0. logq holds exact log-weights, so no log(0) occurs.
func rowTerm(p, logp float64, overlapRow, logq []float64, eps float64) float64 {
	if p <= eps {
		return 0
	}
	var cross float64
	for j, o := range overlapRow {
		cross += o * o * logq[j]
	}

	return p * (logp - cross)
}

// reduceRows sums rowTerm over rows [lo, hi) of a row-major n×n overlap.
func reduceRows(lo, hi, n int, overlap, p, logp, logq []float64, eps float64) float64 {
	var sum float64
	for i := lo; i < hi; i++ {
		sum += rowTerm(p[i], logp[i], overlap[i*n:(i+1)*n], logq, eps)
	}

	return sum
}
