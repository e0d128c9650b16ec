package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/scorefour/internal/config"
	"github.com/hailam/scorefour/internal/engine"
	"github.com/hailam/scorefour/internal/protocol"
	"github.com/hailam/scorefour/internal/storage"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "enable debug logging")
	noStore    = flag.Bool("nostore", false, "do not open the settings and decision database")
)

func main() {
	flag.Parse()

	// Stdout carries the protocol; logs go to stderr.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	level, _ := cfg.Level()
	if *debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("file", profilePath).Msg("CPU profiling enabled")
	}

	eng := engine.NewEngine(cfg.TTSizeMB)
	eng.SetLimits(cfg.Limits())

	var store *storage.Storage
	if cfg.StoreDecisions && !*noStore {
		store, err = storage.Open(cfg.DataDir)
		if err != nil {
			log.Warn().Err(err).Msg("storage disabled")
		} else {
			defer store.Close()
			restoreSettings(eng, store)
		}
	}

	log.Info().
		Dur("move-time", eng.Limits().MoveTime).
		Int("max-depth", eng.Limits().Depth).
		Int("tt-mb", cfg.TTSizeMB).
		Bool("storage", store != nil).
		Msg("scorefour ready")

	if err := protocol.New(eng, store, os.Stdin, os.Stdout).Run(); err != nil {
		log.Error().Err(err).Msg("protocol")
	}
}

// restoreSettings applies limits saved by a previous "level" command.
func restoreSettings(eng *engine.Engine, store *storage.Storage) {
	settings, err := store.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("could not load settings")
		return
	}
	if settings.Difficulty == "" {
		return
	}
	eng.SetLimits(settings.Limits())
	log.Info().Str("difficulty", settings.Difficulty).Msg("restored settings")
}
