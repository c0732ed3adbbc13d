package camera

import (
	gomath "math"
	"testing"
)

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	if !c.FitToBounds([6]float32{0, -10, 20, 100, 10, 40}) {
		t.Fatal("FitToBounds rejected a valid box")
	}

	if c.CenterX != 50 || c.CenterY != 0 || c.CenterZ != 30 {
		t.Errorf("center = (%f, %f, %f), want (50, 0, 30)", c.CenterX, c.CenterY, c.CenterZ)
	}
	if c.Distance != 150 {
		t.Errorf("distance = %f, want 150", c.Distance)
	}

	pos := c.Position()
	if pos.X != 50 || pos.Y != 0 || gomath.Abs(float64(pos.Z-180)) > 1e-3 {
		t.Errorf("position = %+v, want (50, 0, 180)", pos)
	}
}

func TestFitToBoundsEmpty(t *testing.T) {
	c := NewOrbitCamera()
	before := *c

	empty := [6]float32{
		gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32,
		-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32,
	}
	if c.FitToBounds(empty) {
		t.Error("FitToBounds accepted an empty box")
	}
	if *c != before {
		t.Error("empty box changed the camera")
	}
}

func TestFitToBoundsSinglePoint(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds([6]float32{1, 2, 3, 1, 2, 3})
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want MinDistance %f", c.Distance, c.MinDistance)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for range 100 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want %f", c.Distance, c.MinDistance)
	}
	for range 200 {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %f, want %f", c.Distance, c.MaxDistance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %f, want %f", c.RotationX, c.MaxPitch)
	}
	c.DragSensitivity = 0.25
	c.HandleDrag(2, -100000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %f, want %f", c.RotationX, c.MinPitch)
	}
	if c.RotationY != -0.5 {
		t.Errorf("yaw = %f, want -0.5", c.RotationY)
	}
}
