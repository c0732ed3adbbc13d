package fiber

import (
	"math/rand/v2"
	"time"

	"github.com/Faultbox/tractview/pkg/trk"
)

// Sample returns at most budget tracks chosen uniformly at random in a
// single pass (reservoir sampling). If tracks already fit the budget they are
// returned unchanged. The result holds the same track slices as the input.
// A nil rng uses a time-seeded generator.
func Sample(tracks []trk.FiberTrack, budget int, rng *rand.Rand) []trk.FiberTrack {
	if budget <= 0 {
		return nil
	}
	if len(tracks) <= budget {
		return tracks
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}

	reservoir := make([]trk.FiberTrack, budget)
	copy(reservoir, tracks[:budget])

	for i := budget; i < len(tracks); i++ {
		if j := rng.IntN(i + 1); j < budget {
			reservoir[j] = tracks[i]
		}
	}

	return reservoir
}
