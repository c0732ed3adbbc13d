// Package fiber turns fiber tracks into GPU-ready line geometry.
package fiber

import (
	"github.com/Faultbox/tractview/pkg/math"
	"github.com/Faultbox/tractview/pkg/trk"
)

// FloatsPerVertex is the interleaved vertex stride: position (3) + direction (3).
const FloatsPerVertex = 6

// DirectionEpsilon is the magnitude below which a tangent is left unnormalized.
const DirectionEpsilon = 1e-4

// singlePointDirection marks the direction of a one-point track.
var singlePointDirection = math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

// Options controls geometry building.
type Options struct {
	// MaxPointsPerTrack decimates longer tracks to this many points.
	// Values below 2 disable decimation.
	MaxPointsPerTrack int
}

// Geometry is interleaved line-strip vertex data with one draw range per
// non-empty track.
type Geometry struct {
	Vertices []float32 // x, y, z, dx, dy, dz per vertex
	Starts   []int32   // first vertex of each track
	Counts   []int32   // vertex count of each track
	Bounds   BBox

	TrackCount int
	PointCount int
}

// VertexCount returns the number of vertices in the buffer.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / FloatsPerVertex
}

// IsEmpty reports whether there is nothing to draw.
func (g *Geometry) IsEmpty() bool {
	return len(g.Vertices) == 0
}

// Build converts tracks into interleaved vertex data, draw ranges and a
// bounding box. Empty tracks are skipped and get no draw range.
func Build(tracks []trk.FiberTrack, opts Options) *Geometry {
	total := trk.CountPoints(tracks)
	if opts.MaxPointsPerTrack > 1 {
		total = min(total, len(tracks)*opts.MaxPointsPerTrack)
	}

	g := &Geometry{
		Vertices: make([]float32, 0, total*FloatsPerVertex),
		Starts:   make([]int32, 0, len(tracks)),
		Counts:   make([]int32, 0, len(tracks)),
		Bounds:   EmptyBBox(),
	}

	for _, track := range tracks {
		if len(track) == 0 {
			continue
		}
		if opts.MaxPointsPerTrack > 1 {
			track = Decimate(track, opts.MaxPointsPerTrack)
		}

		g.Starts = append(g.Starts, int32(g.PointCount))
		g.Counts = append(g.Counts, int32(len(track)))

		for i := range track {
			pos := track[i].Position()
			dir := Tangent(track, i)
			g.Vertices = append(g.Vertices, pos.X, pos.Y, pos.Z, dir.X, dir.Y, dir.Z)
			g.Bounds.Extend(pos)
		}

		g.TrackCount++
		g.PointCount += len(track)
	}

	return g
}

// Tangent returns the local direction of track at point i using forward,
// backward or central differences. It is unit length when the difference
// exceeds DirectionEpsilon. A single-point track yields (0.5, 0.5, 0.5).
func Tangent(track trk.FiberTrack, i int) math.Vec3 {
	n := len(track)
	var d math.Vec3
	switch {
	case n == 1:
		return singlePointDirection
	case i == 0:
		d = track[1].Position().Sub(track[0].Position())
	case i == n-1:
		d = track[i].Position().Sub(track[i-1].Position())
	default:
		d = track[i+1].Position().Sub(track[i-1].Position())
	}
	return d.NormalizeAbove(DirectionEpsilon)
}
