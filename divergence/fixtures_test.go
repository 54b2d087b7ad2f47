// SPDX-License-Identifier: MIT

package divergence_test

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/slse/matrix"
)

// laplacian builds L = D − W from a symmetric weight function on n vertices.
// Fixtures are hand-built here; graph construction is not part of the library.
func laplacian(n int, weight func(i, j int) float64) *matrix.Dense {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := weight(i, j)
			if w == 0 {
				continue
			}
			data[i*n+j] -= w
			data[j*n+i] -= w
			data[i*n+i] += w
			data[j*n+j] += w
		}
	}
	m, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		panic(err)
	}

	return m
}

// pathLaplacian: 0 — 1 — … — n−1.
func pathLaplacian(n int) *matrix.Dense {
	return laplacian(n, func(i, j int) float64 {
		if j == i+1 {
			return 1
		}
		return 0
	})
}

// starLaplacian: centre 0 joined to every other vertex.
func starLaplacian(n int) *matrix.Dense {
	return laplacian(n, func(i, _ int) float64 {
		if i == 0 {
			return 1
		}
		return 0
	})
}

// cycleLaplacian: path plus the closing edge (n−1, 0).
func cycleLaplacian(n int) *matrix.Dense {
	return laplacian(n, func(i, j int) float64 {
		if j == i+1 || (i == 0 && j == n-1) {
			return 1
		}
		return 0
	})
}

// completeLaplacian: every pair joined with unit weight.
func completeLaplacian(n int) *matrix.Dense {
	return laplacian(n, func(_, _ int) float64 { return 1 })
}

// randomLaplacian: each pair joined with probability p and weight U(0.1, 1.1).
func randomLaplacian(n int, p float64, seed int64) *matrix.Dense {
	rng := rand.New(rand.NewSource(seed))
	w := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				w[i*n+j] = 0.1 + rng.Float64()
			}
		}
	}

	return laplacian(n, func(i, j int) float64 { return w[i*n+j] })
}

// Graded fixtures: one heavy edge {0,1} beside a light component on 2..7.
const (
	heavyWeight = 1e6
	lightWeight = 1e-7
)

// gradedPath lays a light path 2 — 3 — … — 7 beside the heavy edge.
func gradedPath() *matrix.Dense {
	scale := []float64{1.0, 2.5, 0.7, 1.8, 1.2}
	return laplacian(8, func(i, j int) float64 {
		switch {
		case i == 0 && j == 1:
			return heavyWeight
		case i >= 2 && j == i+1:
			return lightWeight * scale[i-2]
		}
		return 0
	})
}

// gradedStar lays a light star centred on 2 beside the heavy edge.
func gradedStar() *matrix.Dense {
	scale := []float64{0.9, 1.6, 2.2, 0.6, 1.3}
	return laplacian(8, func(i, j int) float64 {
		switch {
		case i == 0 && j == 1:
			return heavyWeight
		case i == 2:
			return lightWeight * scale[j-3]
		}
		return 0
	})
}

// nonFinite is a square Matrix that reports NaN at (0,0); Dense refuses to store one.
type nonFinite struct{ matrix.Matrix }

func (m nonFinite) At(i, j int) (float64, error) {
	if i == 0 && j == 0 {
		return math.NaN(), nil
	}
	return m.Matrix.At(i, j)
}

// relClose reports |a−b| ≤ rtol·max(|a|,|b|) + atol.
func relClose(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= rtol*math.Max(math.Abs(a), math.Abs(b))+atol
}
