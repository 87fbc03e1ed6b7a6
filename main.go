package main

import (
	"context"
	"flag"
	"log"
	"os"

	"dungeonfx/internal/config"
	"dungeonfx/internal/replay"
	"dungeonfx/internal/sandbox"
	"dungeonfx/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (embedded defaults when empty)")
	levelName := flag.String("level", "", "level file under assets/levels, overrides the config")
	record := flag.String("record", "", "record the session's casts to this replay file (press K to save)")
	verify := flag.Bool("verify", false, "verify the replay files given as arguments instead of opening the viewer")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config %s, using defaults: %v", *configPath, err)
		} else {
			cfg = loaded
		}
	}
	if *levelName != "" {
		cfg.Engine.Level = *levelName
	}
	if cfg.Logging.Prefix != "" {
		log.SetPrefix(cfg.Logging.Prefix)
	}

	if *verify {
		os.Exit(verifyReplays(cfg, flag.Args()))
	}

	sb, err := sandbox.New(cfg, log.Default(), *record)
	if err != nil {
		log.Fatal(err)
	}

	// Set window properties from config
	w, h := sb.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	if err := ebiten.RunGame(sb); err != nil {
		log.Fatal(err)
	}
}

// verifyReplays plays every recording headless and returns the exit code.
func verifyReplays(cfg *config.Config, files []string) int {
	if len(files) == 0 {
		log.Printf("no replay files given")
		return 2
	}
	recs := make([]*replay.Recording, 0, len(files))
	for _, name := range files {
		rec, err := replay.Load(name)
		if err != nil {
			log.Printf("%s: %v", name, err)
			return 1
		}
		recs = append(recs, rec)
	}

	errs, failed := replay.VerifyAll(context.Background(), recs, sim.Options{Config: cfg})
	for i, err := range errs {
		if err != nil {
			log.Printf("%s: %v", files[i], err)
		} else {
			log.Printf("%s: ok", files[i])
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}
