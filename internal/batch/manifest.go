package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry records the uniform buffers of one frame, column-major as
// they would be handed to a shader.
type ManifestEntry struct {
	Frame               int       `json:"frame"`
	Epoch               int       `json:"epoch"`
	Image               string    `json:"image,omitempty"`
	Drawn               int       `json:"drawn"`
	ModelViewProjection []float32 `json:"model_view_projection"`
	Normal              []float32 `json:"normal"`
	Error               string    `json:"error,omitempty"`
}

// FrameName is the file name used for frame i when frames are written separately.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.webp", i)
}

// WriteManifest writes manifest.json describing every frame.
func WriteManifest(path string, frames []Frame, withImages bool) error {
	entries := make([]ManifestEntry, len(frames))
	for i, f := range frames {
		e := ManifestEntry{
			Frame:               f.Index,
			Epoch:               f.Epoch,
			Drawn:               f.Drawn,
			ModelViewProjection: f.Uniforms.ModelViewProjection.Floats(),
			Normal:              f.Uniforms.Normal.Floats(),
		}
		if withImages && f.Err == nil {
			e.Image = FrameName(f.Index)
		}
		if f.Err != nil {
			e.Error = f.Err.Error()
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
