// Package campath generates deterministic camera pose sequences for sweep
// rendering: an arc around the plane's viewing side, or a straight line
// between two points.
package campath

import (
	"fmt"
	"math"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/surface"
)

// Pose is one camera position and orientation along a path.
type Pose struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// Spec describes a path. Kind is "orbit" or "line".
type Spec struct {
	Kind   string
	Frames int

	// line
	Start, End mathutil.Vec3

	// orbit
	Radius float64
	Height float64
	ArcDeg float64
}

// Generate returns Frames poses. Orbit paths sweep an arc centered on the
// plane's viewing axis (-normal), offset along the plane's up vector, so
// every pose stays on the accepted side of the plane for arcs under 180°.
// Poses carry the plane's orientation; the projector cancels camera
// orientation anyway, this just keeps manifests readable.
func Generate(spec Spec, geom surface.Geometry) ([]Pose, error) {
	if spec.Frames <= 0 {
		return nil, fmt.Errorf("campath: frames must be positive, got %d", spec.Frames)
	}

	poses := make([]Pose, spec.Frames)
	switch spec.Kind {
	case "orbit":
		arc := mathutil.Deg2Rad(spec.ArcDeg)
		for i := range poses {
			t := 0.5
			if spec.Frames > 1 {
				t = float64(i) / float64(spec.Frames-1)
			}
			theta := arc * (t - 0.5)
			offset := geom.Normal.Scale(-spec.Radius * math.Cos(theta)).
				Add(geom.Right.Scale(spec.Radius * math.Sin(theta))).
				Add(geom.Up.Scale(spec.Height))
			poses[i] = Pose{
				Position: geom.Center.Add(offset),
				Rotation: geom.Orientation,
			}
		}
	case "line":
		for i := range poses {
			t := 0.0
			if spec.Frames > 1 {
				t = float64(i) / float64(spec.Frames-1)
			}
			poses[i] = Pose{
				Position: spec.Start.Lerp(spec.End, t),
				Rotation: geom.Orientation,
			}
		}
	default:
		return nil, fmt.Errorf("campath: unknown path kind %q", spec.Kind)
	}

	return poses, nil
}
