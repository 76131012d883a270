package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-trails/internal/flock"
	"github.com/lao-tseu-is-alive/go-boids-trails/internal/render"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "optional JSON config file (schema-validated)")
	maxlen := flag.Int("maxlen", 35, "trail buffer capacity per boid")
	delay := flag.Float64("delay", 1, "seconds between frames")
	width := flag.Float64("width", 1024, "arena width")
	height := flag.Float64("height", 768, "arena height")
	numBoids := flag.Int("num_boids", 100, "number of boids")
	visRange := flag.Float64("vis_range", 75, "perception radius")
	seed := flag.Int64("seed", 0, "simulation seed (0 = derive from clock)")
	policy := flag.String("policy", flock.BoundaryWrap, "boundary policy: wrap or bounce")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stderr)

	cfg, err := buildConfig(configFile, func(c *flock.Config) {
		flag.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "maxlen":
				c.MaxTrailLen = *maxlen
			case "delay":
				c.DelaySeconds = *delay
			case "width":
				c.Width = *width
			case "height":
				c.Height = *height
			case "num_boids":
				c.NumBoids = *numBoids
			case "vis_range":
				c.VisRange = *visRange
			case "seed":
				c.Seed = *seed
			case "policy":
				c.Boundary = *policy
			}
		})
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	state, err := flock.New(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Boids with Trails")
	ebiten.SetTPS(tpsForDelay(cfg.DelaySeconds))

	if err := ebiten.RunGame(render.NewGame(state)); err != nil {
		logger.Fatal(err)
	}
}

// buildConfig loads the config file (or the defaults) and applies the flag
// overrides, then validates the result once.
func buildConfig(configFile string, override func(*flock.Config)) (*flock.Config, error) {
	var (
		cfg *flock.Config
		err error
	)
	if configFile != "" {
		cfg, err = flock.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = flock.DefaultConfig()
	}

	override(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tpsForDelay maps the inter-frame delay onto an Ebiten tick rate. A zero
// delay means "as fast as the default loop" rather than unbounded.
func tpsForDelay(delay float64) int {
	if delay <= 0 {
		return 60
	}
	tps := int(math.Round(1 / delay))
	if tps < 1 {
		tps = 1
	}
	return tps
}
