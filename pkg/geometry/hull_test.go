package geometry

import (
	"math"
	"testing"
)

func unitCubeCorners() []Vector3 {
	return []Vector3{
		NewVector3(0, 0, 0), NewVector3(1, 0, 0),
		NewVector3(0, 1, 0), NewVector3(1, 1, 0),
		NewVector3(0, 0, 1), NewVector3(1, 0, 1),
		NewVector3(0, 1, 1), NewVector3(1, 1, 1),
	}
}

func TestConvexHullVolumeCube(t *testing.T) {
	volume := ConvexHullVolume(unitCubeCorners())

	expected := 1.0
	if math.Abs(volume-expected) > 1e-6 {
		t.Errorf("ConvexHullVolume failed: expected %v, got %v", expected, volume)
	}
}

func TestConvexHullVolumeCubeWithInteriorPoints(t *testing.T) {
	points := append(unitCubeCorners(),
		NewVector3(0.5, 0.5, 0.5),
		NewVector3(0.25, 0.75, 0.5),
	)

	volume := ConvexHullVolume(points)

	expected := 1.0
	if math.Abs(volume-expected) > 1e-6 {
		t.Errorf("ConvexHullVolume with interior points failed: expected %v, got %v", expected, volume)
	}
}

func TestConvexHullVolumeTetrahedron(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
	}

	volume := ConvexHullVolume(points)

	expected := 1.0 / 6.0
	if math.Abs(volume-expected) > 1e-9 {
		t.Errorf("ConvexHullVolume failed: expected %v, got %v", expected, volume)
	}
}

func TestConvexHullVolumeCoplanar(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(1, 1, 0),
	}

	if volume := ConvexHullVolume(points); volume != 0 {
		t.Errorf("coplanar points should yield zero volume, got %v", volume)
	}
}

func TestConvexHullVolumeTooFewPoints(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
	}

	if volume := ConvexHullVolume(points); volume != 0 {
		t.Errorf("degenerate input should yield zero volume, got %v", volume)
	}
}
