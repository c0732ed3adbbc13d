package trk

import (
	"fmt"

	"github.com/Faultbox/tractview/pkg/math"
)

// TrackPoint is a single point of a fiber track.
type TrackPoint struct {
	X, Y, Z float32
	Scalars []float32 // len == Header.NumScalars, nil when there are none
}

// Position returns the point position as a vector.
func (p TrackPoint) Position() math.Vec3 {
	return math.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// FiberTrack is an ordered polyline of points. Tracks returned by the
// decoder are never empty and must not be modified by callers.
type FiberTrack []TrackPoint

// Tractogram is the result of a successful load.
type Tractogram struct {
	Header Header
	Tracks []FiberTrack

	// Status is a human readable summary of the load.
	Status string
	// Warnings holds non-fatal header anomalies.
	Warnings []string
}

// TrackCount returns the number of loaded tracks.
func (t *Tractogram) TrackCount() int {
	return len(t.Tracks)
}

// Track returns the track at index i.
func (t *Tractogram) Track(i int) (FiberTrack, error) {
	if i < 0 || i >= len(t.Tracks) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrTrackIndex, i, len(t.Tracks))
	}
	return t.Tracks[i], nil
}

// PointCount returns the total number of points over all tracks.
func (t *Tractogram) PointCount() int {
	return CountPoints(t.Tracks)
}

// CountPoints sums the point counts of tracks.
func CountPoints(tracks []FiberTrack) int {
	n := 0
	for _, tr := range tracks {
		n += len(tr)
	}
	return n
}
