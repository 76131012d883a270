package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-trails/internal/flock"
)

// boidsim runs the simulation without a display: step, sleep, repeat.
// Useful for profiling the core and for soak-testing parameter sets.
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "optional JSON config file (schema-validated)")
	maxlen := flag.Int("maxlen", 35, "trail buffer capacity per boid")
	delay := flag.Float64("delay", 1, "seconds between ticks")
	width := flag.Float64("width", 1024, "arena width")
	height := flag.Float64("height", 768, "arena height")
	numBoids := flag.Int("num_boids", 100, "number of boids")
	visRange := flag.Float64("vis_range", 75, "perception radius")
	seed := flag.Int64("seed", 0, "simulation seed (0 = derive from clock)")
	policy := flag.String("policy", flock.BoundaryWrap, "boundary policy: wrap or bounce")
	ticks := flag.Int("ticks", 0, "number of ticks to run (0 = until interrupted)")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	level := golog.InfoLevel
	if *verbose {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stderr)

	cfg := flock.DefaultConfig()
	if configFile != "" {
		loaded, err := flock.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "maxlen":
			cfg.MaxTrailLen = *maxlen
		case "delay":
			cfg.DelaySeconds = *delay
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "num_boids":
			cfg.NumBoids = *numBoids
		case "vis_range":
			cfg.VisRange = *visRange
		case "seed":
			cfg.Seed = *seed
		case "policy":
			cfg.Boundary = *policy
		}
	})

	state, err := flock.New(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, state, cfg, *ticks, logger); err != nil {
		logger.Fatal(err)
	}
	logger.Infof("done after %d ticks", state.Tick())
}

// run is the outer loop from the simulation contract: one full Step, then
// the inter-frame delay, repeating until the tick budget or a signal.
func run(ctx context.Context, state *flock.FlockState, cfg *flock.Config, ticks int, logger golog.Logger) error {
	delay := time.Duration(cfg.DelaySeconds * float64(time.Second))

	stepsSinceLog := 0
	lastLog := time.Now()

	for ticks == 0 || state.Tick() < ticks {
		select {
		case <-ctx.Done():
			logger.Info("interrupted, shutting down")
			return nil
		default:
		}

		if err := state.Step(); err != nil {
			return err
		}
		stepsSinceLog++

		if since := time.Since(lastLog); since >= time.Second {
			logger.Infof("tick %d | %.0f ticks/sec | %d boids",
				state.Tick(), float64(stepsSinceLog)/since.Seconds(), state.NumBoids())
			stepsSinceLog = 0
			lastLog = time.Now()
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
				logger.Info("interrupted, shutting down")
				return nil
			case <-time.After(delay):
			}
		}
	}
	return nil
}
