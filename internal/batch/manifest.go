package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"offaxis-renderer/internal/campath"
)

// ManifestEntry describes one rendered frame.
type ManifestEntry struct {
	Frame    int        `json:"frame"`
	Image    string     `json:"image"`
	Camera   [3]float64 `json:"camera"`
	Distance float64    `json:"distance"`
	Accepted bool       `json:"accepted"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, poses []campath.Pose, results []Result) error {
	entries := make([]ManifestEntry, len(poses))
	for i, pose := range poses {
		entries[i] = ManifestEntry{
			Frame:    i,
			Image:    fmt.Sprintf("frame-%04d.webp", i),
			Camera:   pose.Position,
			Distance: results[i].Distance,
			Accepted: results[i].Accepted,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
