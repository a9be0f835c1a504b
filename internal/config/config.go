package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"offaxis-renderer/internal/mathutil"
)

// Config holds the rig description and render settings.
type Config struct {
	// Plane
	PlanePosition [3]float64 `json:"plane_position"`
	PlaneRotation [3]float64 `json:"plane_rotation_deg"` // Euler XYZ, degrees
	PlaneScale    [3]float64 `json:"plane_scale"`
	PlaneWidth    float64    `json:"plane_width"`
	PlaneHeight   float64    `json:"plane_height"`
	MinSize       float64    `json:"min_size"`

	// Clip planes
	NearClip         float64 `json:"near_clip"`
	FarClip          float64 `json:"far_clip"`
	NearFromDistance bool    `json:"near_from_distance"`

	// Camera path (sweep)
	PathKind    string     `json:"path_kind"` // "orbit" or "line"
	Frames      int        `json:"frames"`
	PathStart   [3]float64 `json:"path_start"`
	PathEnd     [3]float64 `json:"path_end"`
	OrbitRadius float64    `json:"orbit_radius"`
	OrbitHeight float64    `json:"orbit_height"`
	OrbitArcDeg float64    `json:"orbit_arc_deg"`

	// Render settings
	OutputDir   string `json:"output_dir"`
	Backdrop    string `json:"backdrop"`
	ViewMode    string `json:"view_mode"` // "scene" or "camera"
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	WebPQuality int    `json:"webp_quality"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Backdrop  string
	Quality   int
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Plane defaults: a 16:9 panel at the origin
	if c.PlaneScale == ([3]float64{}) {
		c.PlaneScale = [3]float64{1, 1, 1}
	}
	if c.PlaneWidth <= 0 {
		c.PlaneWidth = 1.6
	}
	if c.PlaneHeight <= 0 {
		c.PlaneHeight = 0.9
	}

	if c.NearClip <= 0 {
		c.NearClip = 0.1
	}
	if c.FarClip <= 0 {
		c.FarClip = 100
	}

	if c.PathKind == "" {
		c.PathKind = "orbit"
	}
	if c.Frames <= 0 {
		c.Frames = 120
	}
	if c.OrbitRadius <= 0 {
		c.OrbitRadius = 5
	}
	if c.OrbitArcDeg <= 0 {
		c.OrbitArcDeg = 150
	}

	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.ViewMode == "" {
		c.ViewMode = "scene"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// PlaneTransform assembles the plane's world transform from the config.
func (c *Config) PlaneTransform() mathutil.Transform {
	return mathutil.Transform{
		Position: mathutil.Vec3(c.PlanePosition),
		Rotation: mathutil.EulerToQuat(
			mathutil.Deg2Rad(c.PlaneRotation[0]),
			mathutil.Deg2Rad(c.PlaneRotation[1]),
			mathutil.Deg2Rad(c.PlaneRotation[2]),
		),
		Scale: mathutil.Vec3(c.PlaneScale),
	}
}
