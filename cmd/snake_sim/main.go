package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/config"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/experience"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/monitoring"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/policy"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay, loads config.<env>.yaml")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	episodes := flag.Int("episodes", -1, "Episodes to run (-1 to use config default)")
	maxTicks := flag.Int("max-ticks", -1, "Tick limit per episode (-1 to use config default)")
	width := flag.Int("width", -1, "Grid width (-1 to use config default)")
	height := flag.Int("height", -1, "Grid height (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Engine seed (-1 to use config default)")
	playerPolicy := flag.String("player-policy", "", "Player policy: random or greedy (empty to use config default)")
	aiPolicy := flag.String("ai-policy", "", "AI policy: random or greedy (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (empty to use config default)")
	record := flag.Bool("record", false, "Write trajectories to parquet")
	outputDir := flag.String("output-dir", "", "Trajectory directory (empty to use config default)")
	monitorInterval := flag.Duration("monitor-interval", -1, "Progress sampling interval, 0 disables (-1 to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	set := func(key string, value interface{}) {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Msg("Invalid flag value")
		}
	}

	// Use config defaults if not overridden by flags
	if *episodes != -1 {
		set("runner.episodes", *episodes)
	}
	if *maxTicks != -1 {
		set("runner.max_ticks", *maxTicks)
	}
	if *width != -1 {
		set("sim.width", *width)
	}
	if *height != -1 {
		set("sim.height", *height)
	}
	if *seed != -1 {
		set("sim.seed", *seed)
		set("sim.seeded", true)
	}
	if *playerPolicy != "" {
		set("runner.player_policy", *playerPolicy)
	}
	if *aiPolicy != "" {
		set("runner.ai_policy", *aiPolicy)
	}
	if *logLevel != "" {
		set("logging.level", *logLevel)
	}
	if *record {
		set("experience.enabled", true)
	}
	if *outputDir != "" {
		set("experience.output_dir", *outputDir)
	}
	if *monitorInterval >= 0 {
		set("runner.monitor_interval", *monitorInterval)
	}

	// The rollout reads a private copy; reloads never change a running batch.
	cfg := config.Snapshot()
	if err := config.Validate(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	if *watch {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Error().Err(err).Msg("Reloaded config is invalid, keeping previous config")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg); err != nil {
		log.Fatal().Err(err).Msg("Rollout failed")
	}
}

// run plays cfg.Runner.Episodes episodes on a single engine, stopping early
// when ctx is cancelled between ticks.
func run(ctx context.Context, cfg *config.Config) error {
	seed := cfg.Sim.Seed
	if !cfg.Sim.Seeded {
		seed = time.Now().UnixNano()
	}

	player, err := policy.New(cfg.Runner.PlayerPolicy, policyRNG(seed, 1))
	if err != nil {
		return err
	}
	ai, err := policy.New(cfg.Runner.AIPolicy, policyRNG(seed, 2))
	if err != nil {
		return err
	}

	bus := events.NewEventBusWithLogger(log.Logger)
	if cfg.Events.Enabled {
		level, err := zerolog.ParseLevel(strings.ToLower(cfg.Events.LogLevel))
		if err != nil {
			return err
		}
		sub := subscribers.NewLoggerSubscriber("rollout-events", log.Logger, level)
		sub.SetDevMode(cfg.Events.DevMode)
		bus.Subscribe(sub)
	}

	var (
		collector *experience.SimpleCollector
		recorder  *experience.EpisodeRecorder
		sink      game.ExperienceCollector
	)
	if cfg.Experience.Enabled {
		rewards := &experience.RewardConfig{
			WinGame:      cfg.Experience.Rewards.Win,
			LoseGame:     cfg.Experience.Rewards.Lose,
			DrawGame:     cfg.Experience.Rewards.Draw,
			LengthGained: cfg.Experience.Rewards.LengthGained,
			LengthLost:   cfg.Experience.Rewards.LengthLost,
		}
		collector = experience.NewSimpleCollector(cfg.Experience.MaxTransitions, rewards, log.Logger)
		recorder = experience.NewEpisodeRecorder(cfg.Experience.OutputDir, log.Logger)
		sink = experience.Tee{collector, recorder}
	}

	engineSeed := seed
	e := game.NewEngine(game.GameConfig{
		Width:               cfg.Sim.Width,
		Height:              cfg.Sim.Height,
		Seed:                &engineSeed,
		Logger:              log.Logger,
		EventBus:            bus,
		ExperienceCollector: sink,
	})

	log.Info().
		Str("game_id", e.GameID()).
		Int("width", cfg.Sim.Width).
		Int("height", cfg.Sim.Height).
		Int64("seed", seed).
		Int("episodes", cfg.Runner.Episodes).
		Int("max_ticks", cfg.Runner.MaxTicks).
		Str("player_policy", player.Name()).
		Str("ai_policy", ai.Name()).
		Msg("Starting rollout")

	monitor := monitoring.NewRolloutMonitor(cfg.Runner.MonitorInterval, log.Logger)
	if cfg.Runner.MonitorInterval > 0 {
		monitor.Start(ctx)
		defer monitor.Stop()
	}

	wins := map[core.Winner]int{}
	played := 0

	for ep := 0; ep < cfg.Runner.Episodes; ep++ {
		if ep > 0 {
			e.Reset()
		}

		winner, ticks, err := playEpisode(ctx, e, player, ai, cfg.Runner.MaxTicks, monitor)
		if err != nil {
			return err
		}
		played++
		wins[winner]++
		monitor.RecordEpisode()

		if !e.IsDone() && recorder != nil {
			// Truncated episodes are flushed without an outcome.
			if _, err := recorder.Flush(core.WinnerNone); err != nil {
				log.Error().Err(err).Int("episode", e.Episode()).Msg("Failed to flush truncated episode")
			}
		}

		pl, al := e.Observation().Lengths()
		log.Info().
			Int("episode", e.Episode()).
			Str("winner", winner.String()).
			Int("ticks", ticks).
			Bool("truncated", !e.IsDone()).
			Int("player_length", pl).
			Int("ai_length", al).
			Msg("Episode finished")

		if ctx.Err() != nil {
			log.Warn().Msg("Interrupted, stopping rollout")
			break
		}
	}

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			log.Error().Err(err).Msg("Some trajectories failed to write")
		}
	}
	if collector != nil && collector.GetExperienceCount() > 0 {
		path := filepath.Join(cfg.Experience.OutputDir, e.GameID()+"_experiences.parquet")
		if err := experience.WriteExperiencesParquet(path, collector.GetExperiences()); err != nil {
			return err
		}
		log.Info().
			Str("path", path).
			Int("transitions", collector.GetExperienceCount()).
			Msg("Experiences written")
	}

	metrics := monitor.GetMetrics()
	log.Info().
		Int("episodes", played).
		Int("player_wins", wins[core.WinnerPlayer]).
		Int("ai_wins", wins[core.WinnerAI]).
		Int("draws", wins[core.WinnerDraw]).
		Int("unfinished", wins[core.WinnerNone]).
		Int64("ticks", metrics.Ticks).
		Float64("ticks_per_sec", metrics.TicksPerSecond).
		Dur("elapsed", metrics.Elapsed).
		Msg("Rollout complete")

	return nil
}

// playEpisode steps e until the episode ends, maxTicks is reached or ctx is
// cancelled. It returns the winner and the number of ticks played, or
// core.ErrGameOver if e was not reset since its last game ended.
func playEpisode(ctx context.Context, e *game.Engine, player, ai policy.Policy, maxTicks int, monitor *monitoring.RolloutMonitor) (core.Winner, int, error) {
	if e.IsDone() {
		return e.Winner(), e.Tick(), core.ErrGameOver
	}
	for e.Tick() < maxTicks && !e.IsDone() {
		if ctx.Err() != nil {
			break
		}
		obs := e.Observation()
		pd := player.Choose(obs, core.RolePlayer, e.Agent(core.RolePlayer).Direction)
		ad := ai.Choose(obs, core.RoleAI, e.Agent(core.RoleAI).Direction)
		if _, err := e.Step(pd, ad); err != nil {
			return core.WinnerNone, e.Tick(), err
		}
		monitor.RecordTick()
	}
	return e.Winner(), e.Tick(), nil
}

// policyRNG derives a per-policy stream from the rollout seed
func policyRNG(seed, offset int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + offset))
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
