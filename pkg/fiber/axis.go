package fiber

import (
	gomath "math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/tractview/pkg/math"
	"github.com/Faultbox/tractview/pkg/trk"
)

// PrincipalAxis returns the unit direction of greatest positional variance
// over every point of tracks, and the share of total variance it explains.
// The axis is signed so its largest component is positive. ok is false with
// fewer than two points or when all points coincide.
func PrincipalAxis(tracks []trk.FiberTrack) (axis math.Vec3, explained float64, ok bool) {
	n := trk.CountPoints(tracks)
	if n < 2 {
		return math.Vec3{}, 0, false
	}

	data := mat.NewDense(n, 3, nil)
	row := 0
	for _, t := range tracks {
		for _, p := range t {
			data.Set(row, 0, float64(p.X))
			data.Set(row, 1, float64(p.Y))
			data.Set(row, 2, float64(p.Z))
			row++
		}
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(&cov, true) {
		return math.Vec3{}, 0, false
	}

	// Eigenvalues are in ascending order.
	values := eig.Values(nil)
	total := values[0] + values[1] + values[2]
	if total <= 0 {
		return math.Vec3{}, 0, false
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	v := [3]float64{vectors.At(0, 2), vectors.At(1, 2), vectors.At(2, 2)}

	largest := 0
	for i := 1; i < 3; i++ {
		if gomath.Abs(v[i]) > gomath.Abs(v[largest]) {
			largest = i
		}
	}
	if v[largest] < 0 {
		v[0], v[1], v[2] = -v[0], -v[1], -v[2]
	}

	axis = math.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
	return axis, values[2] / total, true
}
