package fiber

import "github.com/Faultbox/tractview/pkg/trk"

// Decimate returns track reduced to maxPoints points, keeping the first and
// last point and sampling the rest at a uniform stride. Tracks that already
// fit, and limits below 2, return the track unchanged.
func Decimate(track trk.FiberTrack, maxPoints int) trk.FiberTrack {
	n := len(track)
	if maxPoints < 2 || n <= maxPoints {
		return track
	}

	out := make(trk.FiberTrack, maxPoints)
	step := float64(n-1) / float64(maxPoints-1)
	for i := 0; i < maxPoints-1; i++ {
		out[i] = track[int(float64(i)*step)]
	}
	out[maxPoints-1] = track[n-1]
	return out
}
