package trk

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the point counts of a track collection.
type Stats struct {
	Tracks     int
	Points     int
	MinPoints  int
	MaxPoints  int
	MeanPoints float64
	StdPoints  float64
	Median     float64
}

// ComputeStats returns point-count statistics for tracks.
func ComputeStats(tracks []FiberTrack) Stats {
	s := Stats{Tracks: len(tracks)}
	if len(tracks) == 0 {
		return s
	}

	lengths := make([]float64, len(tracks))
	s.MinPoints = len(tracks[0])
	for i, tr := range tracks {
		n := len(tr)
		lengths[i] = float64(n)
		s.Points += n
		s.MinPoints = min(s.MinPoints, n)
		s.MaxPoints = max(s.MaxPoints, n)
	}

	s.MeanPoints, s.StdPoints = stat.MeanStdDev(lengths, nil)
	if len(lengths) < 2 {
		s.StdPoints = 0
	}

	sort.Float64s(lengths)
	s.Median = median(lengths)

	return s
}

// median of sorted values; even counts average the two middle values.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// String returns a multi-line report.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Tracks:        %d\nPoints:        %d\nPoints/track:  min %d, max %d, mean %.1f, std %.1f, median %.1f\n",
		s.Tracks, s.Points, s.MinPoints, s.MaxPoints, s.MeanPoints, s.StdPoints, s.Median)
}
