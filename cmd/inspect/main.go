package main

import (
	"flag"
	"fmt"
	"os"

	"pointcloud-renderer/internal/config"
	"pointcloud-renderer/internal/mathutil"
	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	frame := flag.Int("frame", 0, "Frame index to inspect")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{})
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	base, err := scene.New(cfg.Width, cfg.Height, cfg.Near, cfg.Far)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	base.ViewRot = cfg.ViewRot
	base.SpinAxis = cfg.SpinAxis
	sc := base.AtFrame(*frame, cfg.SpinDegrees(), cfg.Orbit)
	u := sc.Uniforms(0, 0)

	fmt.Printf("Frame %d: view rot %.2f %.2f %.2f, spin %.2f\n", *frame, sc.ViewRot[0], sc.ViewRot[1], sc.ViewRot[2], sc.Angle)
	fmt.Printf("Viewport %dx%d, depth [%g, %g]\n", sc.Width, sc.Height, sc.Near, sc.Far)
	a := sc.SpinAxis
	fmt.Printf("Spin axis %.4f %.4f %.4f (unit: %v)\n", a[0], a[1], a[2], mathutil.IsUnitAxis(a[0], a[1], a[2], 1e-4))

	epoch := *frame / cfg.RegenerateEvery
	set, err := pointcloud.NewCache(cfg.Points, cfg.CloudScale, cfg.Seed, nil).Get(epoch)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	buf := set.Interleaved()
	fmt.Printf("Points: epoch %d, %d vertices, %d floats (%d bytes) interleaved\n", epoch, set.Len(), len(buf), len(buf)*4)
	fmt.Printf("  first vertex: pos %v rgb %v\n\n", buf[:3], buf[3:pointcloud.Stride])

	dump("Projection", sc.Projection)
	dump("ModelView", u.ModelView)
	dump("ModelViewProjection", u.ModelViewProjection)
	dump("Normal", u.Normal)

	fmt.Printf("ModelView rigid: %v\n", u.ModelView.IsRigid(1e-5))
	fmt.Printf("inv(MV)*MV identity: %v\n", mathutil.Mat4Mul(mathutil.InvertRigid(u.ModelView), u.ModelView).IsIdentity(1e-4))
	fmt.Printf("All finite: %v\n", u.ModelViewProjection.IsFinite() && u.Normal.IsFinite())
}

func dump(name string, m mathutil.Mat4) {
	fmt.Printf("%s\n", name)
	for r := 0; r < 4; r++ {
		fmt.Printf("  [% 10.4f % 10.4f % 10.4f % 10.4f]\n", m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3))
	}
	fmt.Printf("  column-major: %v\n\n", m.Floats())
}
