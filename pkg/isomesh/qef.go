package isomesh

import (
	"gonum.org/v1/gonum/mat"

	"github.com/duskforge/isomesh/pkg/math"
)

// singularValueCutoff discards eigenvalues of the normal matrix below this
// fraction of the largest eigenvalue, matching the "small singular-value
// cutoff" the SVD-based QEF solve is defined with.
const singularValueCutoff = 0.1

// QEFResult is the outcome of a quadric-error-function solve.
type QEFResult struct {
	Position math.Vec3
	Residual float32
}

// SolveQEF finds the point x* minimizing sum_i (n_i . (x - p_i))^2 over the
// given (position, normal) samples, pulling toward the sample centroid for
// numerical stability where the normal matrix is rank-deficient. It returns
// x* and the residual quadratic error at x*.
//
// The solve proceeds by eigendecomposing the 3x3 normal matrix ATA = sum
// n_i n_i^T (symmetric, so gonum's EigenSym applies) and inverting only the
// eigenvalues above singularValueCutoff * largest eigenvalue, which is the
// SVD-with-cutoff the least-squares solve is specified to use.
func SolveQEF(positions []math.Vec3, normals []math.Vec3) QEFResult {
	n := len(positions)
	if n == 0 {
		return QEFResult{}
	}

	var centroid math.Vec3
	for _, p := range positions {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float32(n))

	sym := mat.NewSymDense(3, nil)
	atb := make([]float64, 3)

	for i := 0; i < n; i++ {
		ni := normals[i]
		pi := positions[i].Sub(centroid)
		d := float64(ni.Dot(pi))

		row := [3]float64{float64(ni.X), float64(ni.Y), float64(ni.Z)}
		for r := 0; r < 3; r++ {
			for c := r; c < 3; c++ {
				sym.SetSym(r, c, sym.At(r, c)+row[r]*row[c])
			}
			atb[r] += row[r] * d
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return QEFResult{Position: centroid, Residual: 0}
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	// Solve x = V * Sigma^-1 * V^T * b, discarding small eigenvalues.
	x := make([]float64, 3)
	if maxVal > 0 {
		vtb := make([]float64, 3)
		for j := 0; j < 3; j++ {
			for i := 0; i < 3; i++ {
				vtb[j] += vectors.At(i, j) * atb[i]
			}
		}
		for j := 0; j < 3; j++ {
			if values[j] < singularValueCutoff*maxVal {
				vtb[j] = 0
				continue
			}
			vtb[j] /= values[j]
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				x[i] += vectors.At(i, j) * vtb[j]
			}
		}
	}

	solved := math.Vec3{X: float32(x[0]), Y: float32(x[1]), Z: float32(x[2])}
	worldPos := solved.Add(centroid)

	var residual float64
	for i := 0; i < n; i++ {
		diff := worldPos.Sub(positions[i])
		d := float64(normals[i].Dot(diff))
		residual += d * d
	}

	return QEFResult{Position: worldPos, Residual: float32(residual)}
}
