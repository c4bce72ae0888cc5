package batch

import (
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/postprocess"
	"pointcloud-renderer/internal/raster"
	"pointcloud-renderer/internal/scene"
)

const progressThrottle = 100 * time.Millisecond

// Config holds all shared resources for a batch run.
type Config struct {
	Width           int
	Height          int
	Supersample     int
	Near            float32
	Far             float32
	PointSize       int
	RegenerateEvery int
	Frames          int
	Spin            float32
	SpinAxis        [3]float32 // zero keeps the scene's Z axis
	ViewRot         [3]float32
	Orbit           [3]float32
	HUD             bool
	Workers         int
	Points          *pointcloud.Cache

	// Progress receives a progress bar; nil keeps the run silent.
	Progress io.Writer
}

// Frame holds the outcome of rendering one animation frame.
type Frame struct {
	Index    int
	Epoch    int
	Image    *image.NRGBA
	Uniforms scene.Uniforms
	Drawn    int
	Err      error
}

// Run renders all frames using a worker pool. Frames are independent: each
// derives its scene from the frame index and its points from the cache.
func Run(cfg Config) ([]Frame, error) {
	if cfg.Points == nil {
		return nil, fmt.Errorf("batch: no point source")
	}
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("batch: frame count must be positive, got %d", cfg.Frames)
	}
	base, err := scene.New(cfg.Width, cfg.Height, cfg.Near, cfg.Far)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	base.ViewRot = cfg.ViewRot
	if cfg.SpinAxis != ([3]float32{}) {
		base.SpinAxis = cfg.SpinAxis
	}
	if cfg.RegenerateEvery <= 0 {
		cfg.RegenerateEvery = cfg.Frames
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	frames := make([]Frame, cfg.Frames)
	bar := newBar(cfg.Progress, cfg.Frames)
	done := newEpochTracker(cfg.Frames, cfg.RegenerateEvery)

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				frames[idx] = renderFrame(cfg, base, idx)
				if epoch, last := done.finish(idx); last {
					cfg.Points.Drop(epoch)
				}
				_ = bar.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < cfg.Frames; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	_ = bar.Finish()

	return frames, nil
}

// epochTracker counts outstanding frames per epoch so a point set can be
// released as soon as the last frame using it is rendered.
type epochTracker struct {
	mu        sync.Mutex
	every     int
	remaining []int
}

func newEpochTracker(frames, every int) *epochTracker {
	t := &epochTracker{every: every, remaining: make([]int, (frames+every-1)/every)}
	for i := 0; i < frames; i++ {
		t.remaining[i/every]++
	}
	return t
}

// finish marks frame idx rendered and reports whether its epoch is complete.
func (t *epochTracker) finish(idx int) (epoch int, last bool) {
	epoch = idx / t.every
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining[epoch]--
	return epoch, t.remaining[epoch] == 0
}

func newBar(w io.Writer, total int) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(int64(total), "rendering")
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

func renderFrame(cfg Config, base *scene.Scene, idx int) Frame {
	epoch := idx / cfg.RegenerateEvery
	f := Frame{Index: idx, Epoch: epoch}

	set, err := cfg.Points.Get(epoch)
	if err != nil {
		f.Err = fmt.Errorf("frame %d: %w", idx, err)
		return f
	}

	sc := base.AtFrame(idx, cfg.Spin, cfg.Orbit)
	f.Uniforms = sc.Uniforms(0, 0)

	img, drawn := raster.RenderFrame(set.Vertices, f.Uniforms.ModelViewProjection,
		cfg.Width, cfg.Height, cfg.PointSize, cfg.Supersample)
	f.Drawn = drawn

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	if cfg.HUD {
		postprocess.DrawHUD(img, []string{
			fmt.Sprintf("frame %d/%d  epoch %d", idx+1, cfg.Frames, epoch),
			fmt.Sprintf("view %.0f %.0f %.0f  spin %.0f", sc.ViewRot[0], sc.ViewRot[1], sc.ViewRot[2], sc.Angle),
			fmt.Sprintf("points %d/%d", drawn, set.Len()),
		})
	}

	f.Image = img
	return f
}
