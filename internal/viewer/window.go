package viewer

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/raster"
	"pointcloud-renderer/internal/scene"
)

// Options configures the interactive window.
type Options struct {
	Title           string
	Width           int
	Height          int
	PointSize       int
	Spin            float32    // model degrees per tick
	SpinAxis        [3]float32 // zero keeps Z
	RegenerateEvery int        // ticks between new point sets
	TPS             int
	ViewRot         [3]float32
	Near            float32
	Far             float32
}

// Run opens a desktop window that animates the point cloud and maps the
// arrow keys to view rotation. It blocks until the window closes.
func Run(opts Options, points *pointcloud.Cache) error {
	g, err := newGame(opts, points)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}
	return ebiten.RunGame(g)
}

var arrowKeys = []struct {
	key ebiten.Key
	dir scene.Key
}{
	{ebiten.KeyArrowLeft, scene.KeyLeft},
	{ebiten.KeyArrowRight, scene.KeyRight},
	{ebiten.KeyArrowUp, scene.KeyUp},
	{ebiten.KeyArrowDown, scene.KeyDown},
}

type game struct {
	opts   Options
	scene  *scene.Scene
	points *pointcloud.Cache
	set    *pointcloud.Set
	epoch  int
	ticks  int

	fb    *raster.FrameBuffer
	fbImg *ebiten.Image
}

func newGame(opts Options, points *pointcloud.Cache) (*game, error) {
	sc, err := scene.New(opts.Width, opts.Height, opts.Near, opts.Far)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	sc.ViewRot = opts.ViewRot
	if opts.SpinAxis != ([3]float32{}) {
		sc.SpinAxis = opts.SpinAxis
	}
	if opts.RegenerateEvery <= 0 {
		opts.RegenerateEvery = pointcloud.DefaultRegenerateEvery
	}
	set, err := points.Get(0)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	return &game{opts: opts, scene: sc, points: points, set: set}, nil
}

func (g *game) Update() error {
	for _, k := range arrowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.scene.HandleKey(k.dir)
			slog.Debug("view rotated", "rot", g.scene.ViewRot)
		}
	}
	g.scene.Angle += g.opts.Spin

	g.ticks++
	if g.ticks%g.opts.RegenerateEvery == 0 {
		g.epoch++
		set, err := g.points.Get(g.epoch)
		if err != nil {
			return err
		}
		g.set = set
		g.points.Evict(g.epoch)
		slog.Debug("points regenerated", "epoch", g.epoch, "points", set.Len())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.scene.Width, g.scene.Height
	if g.fb == nil || g.fb.Width != w || g.fb.Height != h {
		g.fb = raster.NewFrameBuffer(w, h)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	// Opaque black background: WritePixels expects premultiplied alpha.
	g.fb.Clear(0, 0, 0, 0xFF)
	u := g.scene.Uniforms(0, 0)
	raster.DrawPoints(g.fb, g.set.Vertices, u.ModelViewProjection, g.opts.PointSize)

	g.fbImg.WritePixels(g.fb.Color)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.scene.Width || outsideHeight != g.scene.Height) {
		g.scene.Reshape(outsideWidth, outsideHeight)
		slog.Debug("viewport reshaped", "width", outsideWidth, "height", outsideHeight)
	}
	return g.scene.Width, g.scene.Height
}
