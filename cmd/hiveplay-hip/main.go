package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"

	"github.com/hailam/hiveplay/internal/config"
	"github.com/hailam/hiveplay/internal/hip"
	"github.com/hailam/hiveplay/internal/logging"
	"github.com/hailam/hiveplay/internal/storage"
)

var (
	configDir  = flag.String("config", ".", "directory holding "+config.FileName)
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := config.Load(*configDir); err != nil {
		boot.Error().Err(err).Msg("could not load config")
		return 1
	}
	settings := config.Get()

	log, err := logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)
	if err != nil {
		boot.Error().Err(err).Msg("could not set up logging")
		return 1
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	archive, err := storage.Open(settings.Storage.Type, settings.Storage.Dir, settings.Storage.SQLitePath)
	if err != nil {
		log.Error().Err(err).Msg("could not open archive")
		return 1
	}
	if archive != nil {
		defer archive.Close()
	}
	log.Info().Str("storage", settings.Storage.Type).Msg("hiveplay ready")

	// Create and run protocol handler
	protocol := hip.New(os.Stdin, os.Stdout, archive, log)
	if err := protocol.Run(); err != nil {
		log.Error().Err(err).Msg("protocol stopped")
		return 1
	}
	return 0
}
