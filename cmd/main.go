package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	planet "github.com/maxcaplan/planet-tab"
)

func main() {
	cfg := planet.DefaultConfig()

	var colorHex, shading string
	flag.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "Subdivisions per cube face edge.")
	flag.StringVar(&colorHex, "color", "", "Planet colour as #rrggbb.")
	flag.StringVar(&shading, "shading", cfg.Material.Shading.String(), "Shading mode: smooth, flat or wireframe.")
	flag.Float64Var(&cfg.Camera.FOV, "fov", cfg.Camera.FOV, "Vertical field of view in degrees.")
	flag.Float64Var(&cfg.Camera.Near, "near", cfg.Camera.Near, "Near clipping distance.")
	flag.Float64Var(&cfg.Camera.Far, "far", cfg.Camera.Far, "Far clipping distance.")
	flag.IntVar(&cfg.Size.Width, "width", cfg.Size.Width, "Window width in pixels.")
	flag.IntVar(&cfg.Size.Height, "height", cfg.Size.Height, "Window height in pixels.")
	flag.IntVar(&cfg.TPS, "tps", cfg.TPS, "Ticks per second.")
	flag.BoolVar(&cfg.Stats, "stats", false, "Show FPS and triangle counts.")
	flag.BoolVar(&cfg.Orbit, "orbit", cfg.Orbit, "Orbit the camera with the mouse.")
	flag.BoolVar(&cfg.Headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Headless.Hz, "hz", cfg.Headless.Hz, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	if colorHex != "" {
		c, err := planet.ParseColor(colorHex)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Material.Color = c
	}
	s, err := planet.ParseShading(shading)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Material.Shading = s
	cfg.Camera.Aspect = cfg.Size.Aspect()

	engine, _, err := planet.NewEngineFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := engine.RunHeadless(ctx, cfg.Headless); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := engine.Run("Planet"); err != nil {
		if errors.Is(err, planet.ErrUnsupportedEnvironment) {
			fmt.Fprintln(os.Stderr, "Your graphics card or driver does not seem to support this program.")
			fmt.Fprintln(os.Stderr, "Try running with -headless.")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
