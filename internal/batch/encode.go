package batch

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// WriteAnimation encodes all successfully rendered frames into one looping
// animated WebP. Each frame is shown for durationMS milliseconds.
func WriteAnimation(path string, frames []Frame, durationMS uint) error {
	ani := &nativewebp.Animation{LoopCount: 0}
	for _, f := range frames {
		if f.Err != nil || f.Image == nil {
			continue
		}
		ani.Images = append(ani.Images, f.Image)
		ani.Durations = append(ani.Durations, durationMS)
		ani.Disposals = append(ani.Disposals, 1) // clear: frames are transparent
	}
	if len(ani.Images) == 0 {
		return errors.New("batch: no frames to encode")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := nativewebp.EncodeAll(out, ani, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return out.Close()
}

// WriteFrame saves a single frame as a still WebP.
func WriteFrame(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
