package fiber

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/tractview/pkg/trk"
)

// indexedTracks returns n single-point tracks whose X holds their index.
func indexedTracks(n int) []trk.FiberTrack {
	tracks := make([]trk.FiberTrack, n)
	for i := range tracks {
		tracks[i] = trk.FiberTrack{{X: float32(i)}}
	}
	return tracks
}

func TestSample_UnderBudgetUnchanged(t *testing.T) {
	tracks := indexedTracks(5)
	got := Sample(tracks, 5, rand.New(rand.NewPCG(1, 2)))
	if len(got) != 5 || &got[0] != &tracks[0] {
		t.Error("input within budget should be returned as-is")
	}
}

func TestSample_NonPositiveBudget(t *testing.T) {
	if got := Sample(indexedTracks(3), 0, nil); got != nil {
		t.Errorf("expected nil, got %d tracks", len(got))
	}
}

func TestSample_ExactSizeNoDuplicates(t *testing.T) {
	tracks := indexedTracks(1000)
	got := Sample(tracks, 100, rand.New(rand.NewPCG(7, 9)))

	if len(got) != 100 {
		t.Fatalf("expected 100 tracks, got %d", len(got))
	}
	seen := make(map[float32]bool)
	for _, tr := range got {
		if seen[tr[0].X] {
			t.Fatalf("track %v selected twice", tr[0].X)
		}
		seen[tr[0].X] = true
	}
}

func TestSample_NilRNG(t *testing.T) {
	if got := Sample(indexedTracks(50), 10, nil); len(got) != 10 {
		t.Errorf("expected 10 tracks, got %d", len(got))
	}
}

func TestSample_UniformFrequency(t *testing.T) {
	const (
		m      = 20
		budget = 5
		trials = 20000
	)
	tracks := indexedTracks(m)
	rng := rand.New(rand.NewPCG(42, 1024))

	observed := make([]float64, m)
	for i := 0; i < trials; i++ {
		for _, tr := range Sample(tracks, budget, rng) {
			observed[int(tr[0].X)]++
		}
	}

	p := float64(budget) / float64(m)
	expected := make([]float64, m)
	for i := range expected {
		expected[i] = p * trials
	}

	for i, o := range observed {
		if freq := o / trials; freq < p-0.02 || freq > p+0.02 {
			t.Errorf("track %d selected with frequency %.4f, want ~%.2f", i, freq, p)
		}
	}

	if chi := stat.ChiSquare(observed, expected); chi > 60 {
		t.Errorf("chi-square %.1f too large for uniform selection", chi)
	}
}
