package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Faultbox/tractview/pkg/trk"
)

// synthDim and synthVoxel describe the volume synthetic bundles live in.
var (
	synthDim   = [3]uint16{128, 128, 64}
	synthVoxel = [3]float32{2, 2, 2}
)

type synthOptions struct {
	Tracks     int
	MaxPoints  int
	WithScalar bool
}

func (o synthOptions) validate() error {
	if o.Tracks <= 0 {
		return fmt.Errorf("track count must be positive, got %d", o.Tracks)
	}
	if o.MaxPoints < 2 || o.MaxPoints > trk.MaxTrackPoints {
		return fmt.Errorf("points per track must be in [2, %d], got %d", trk.MaxTrackPoints, o.MaxPoints)
	}
	return nil
}

// synthesize builds an arched bundle running along x, in millimetres inside
// the synthetic volume. Track lengths vary between MaxPoints/2 and MaxPoints.
func synthesize(o synthOptions, rng *rand.Rand) (trk.Header, []trk.FiberTrack) {
	h := trk.NewHeader(synthDim, synthVoxel)
	if o.WithScalar {
		h.NumScalars = 1
		copy(h.ScalarName[0][:], "fa")
	}

	extent := [3]float32{
		float32(synthDim[0]) * synthVoxel[0],
		float32(synthDim[1]) * synthVoxel[1],
		float32(synthDim[2]) * synthVoxel[2],
	}

	tracks := make([]trk.FiberTrack, o.Tracks)
	for i := range tracks {
		n := o.MaxPoints/2 + rng.IntN(o.MaxPoints-o.MaxPoints/2+1)
		n = max(n, 2)

		// Offset from the bundle core.
		dy := float32(rng.NormFloat64()) * extent[1] * 0.05
		dz := float32(rng.NormFloat64()) * extent[2] * 0.05
		phase := rng.Float64() * 0.2

		track := make(trk.FiberTrack, n)
		for j := range track {
			t := float64(j) / float64(n-1)
			arch := float32(math.Sin(math.Pi * (t*0.8 + 0.1 + phase)))

			track[j] = trk.TrackPoint{
				X: extent[0] * float32(0.1+0.8*t),
				Y: extent[1]*0.5 + dy,
				Z: extent[2]*(0.3+0.4*arch) + dz,
			}
			if o.WithScalar {
				track[j].Scalars = []float32{0.3 + 0.5*arch}
			}
		}
		tracks[i] = track
	}

	return h, tracks
}
