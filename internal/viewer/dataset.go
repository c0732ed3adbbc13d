package viewer

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/Faultbox/tractview/pkg/fiber"
	"github.com/Faultbox/tractview/pkg/trk"
)

// Dataset is a loaded tractogram and the subset of tracks handed to the renderer.
type Dataset struct {
	Path       string
	Tractogram *trk.Tractogram
	Shown      []trk.FiberTrack
}

// LoadDataset reads path and reservoir-samples it down to maxTracks.
// maxTracks <= 0 shows every track.
func LoadDataset(path string, maxTracks int, rng *rand.Rand) (*Dataset, error) {
	tg, err := trk.LoadFile(path)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Path: path, Tractogram: tg}
	ds.Resample(maxTracks, rng)
	return ds, nil
}

// Resample draws a fresh subset of at most maxTracks tracks.
func (d *Dataset) Resample(maxTracks int, rng *rand.Rand) {
	d.Shown = d.Tractogram.Tracks
	if maxTracks > 0 {
		d.Shown = fiber.Sample(d.Tractogram.Tracks, maxTracks, rng)
	}
}

// Sampled reports whether only a subset of tracks is shown.
func (d *Dataset) Sampled() bool {
	return len(d.Shown) < d.Tractogram.TrackCount()
}

// Title returns a window title summarizing the dataset.
func (d *Dataset) Title(base string) string {
	return fmt.Sprintf("%s - %s (%d/%d tracks, %d points)",
		base,
		filepath.Base(d.Path),
		len(d.Shown),
		d.Tractogram.TrackCount(),
		trk.CountPoints(d.Shown),
	)
}
