// Command agentsim runs the human-plausible platformer agent through a
// synthetic level and reports how it behaved.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/talgya/mimic/internal/behavior"
	"github.com/talgya/mimic/internal/config"
	"github.com/talgya/mimic/internal/emotion"
	"github.com/talgya/mimic/internal/entropy"
	"github.com/talgya/mimic/internal/env"
	"github.com/talgya/mimic/internal/telemetry"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		seed       = flag.Int64("seed", 0, "override the run seed")
		ticks      = flag.Int("ticks", 0, "override the tick budget")
		tracePath  = flag.String("trace", "", "override the trace database path")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *ticks != 0 {
		cfg.Ticks = *ticks
	}
	if *tracePath != "" {
		cfg.TracePath = *tracePath
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("run failed", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	log.Info("agentsim starting",
		zap.Int64("seed", cfg.Seed),
		zap.Int("ticks", cfg.Ticks),
		zap.Int("level_length", cfg.World.Length),
	)

	var rec *telemetry.Recorder
	if cfg.TracePath != "" {
		var err error
		rec, err = telemetry.Open(cfg.TracePath)
		if err != nil {
			return err
		}
		defer rec.Close()
		runID, err := rec.BeginRun(cfg.Seed)
		if err != nil {
			return err
		}
		log.Info("trace recording enabled", zap.String("run_id", runID), zap.String("path", cfg.TracePath))
	}

	world, em := simulate(cfg, log, rec)
	if err := rec.Flush(); err != nil {
		return err
	}

	progress := 100 * world.X() / float64(world.Length())
	log.Info("run complete",
		zap.Bool("finished", world.Finished()),
		zap.String("progress", fmt.Sprintf("%.1f%%", progress)),
		zap.String("coins", humanize.Comma(int64(world.Coins()))),
		zap.String("kills", humanize.Comma(int64(world.Kills()))),
		zap.String("deaths", humanize.Comma(int64(world.Deaths()))),
		zap.String("mood", em.Describe()),
	)
	return nil
}

// simulate drives the agent through the level tick by tick. The winning
// Apply queues the outcome for the next observation, so on a finish the
// final observation is fed back through the controller to deliver the win
// signal to the emotion model; an unfinished run counts as a failed attempt.
func simulate(cfg config.Config, log *zap.Logger, rec *telemetry.Recorder) (*env.World, *emotion.Model) {
	world := env.NewWorld(cfg.World, cfg.Seed)
	src := entropy.NewStream(cfg.Seed)
	em := emotion.NewModel(entropy.NewStream(cfg.Seed + 1))
	ctrl := behavior.NewController(em, src, log)

	prev := ctrl.Active()
	for tick := 0; tick < cfg.Ticks && !world.Finished(); tick++ {
		snap := world.Observe()
		set := ctrl.Step(snap)
		world.Apply(set)

		if cur := ctrl.Active(); cur != prev {
			rec.RecordTransition(tick, prev.String(), cur.String())
			prev = cur
		}
		rec.RecordTick(tick, ctrl.Active().String(), set,
			em.Confidence(), em.Caution(), ctrl.PanicTicks(), ctrl.HesitationTicks())
	}

	if world.Finished() {
		ctrl.Step(world.Observe())
	} else {
		em.RecordLevelFailure()
	}
	return world, em
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
