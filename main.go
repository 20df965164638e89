package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/system"
	"github.com/milk9111/shmup/prefabs"
)

func main() {
	seed := flag.Uint64("seed", 0, "rng seed (0 keeps world.yaml)")
	width := flag.Float64("width", 0, "world width override")
	height := flag.Float64("height", 0, "world height override")
	wave := flag.Int("wave", 1, "first wave")
	boss := flag.String("boss", "", "start straight into this boss encounter")
	debug := flag.Bool("debug", false, "enable debug overlay")
	watch := flag.Bool("watch", true, "hot reload prefabs/ on change")
	mute := flag.Bool("mute", false, "disable sound cues")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		logger.Printf("viewer: %v; using defaults", err)
		cfg = ecs.DefaultConfig()
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *width > 0 {
		cfg.WorldWidth = *width
	}
	if *height > 0 {
		cfg.WorldHeight = *height
	}

	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		logger.Printf("viewer: %v; using built-in catalog", err)
		catalog = component.DefaultCatalog()
	}

	worldOpts := []ecs.Option{ecs.WithLogger(logger)}
	if !*mute {
		worldOpts = append(worldOpts, ecs.WithAudio(newToneAudio(cfg.WorldWidth)))
	}
	opts := []system.KernelOption{
		system.WithWorldOptions(worldOpts...),
		system.WithStartWave(*wave),
	}
	if *boss != "" {
		opts = append(opts, system.WithStartWave(0))
	}
	if src, err := prefabs.LoadScript(prefabs.AbilityWeightsScript); err == nil {
		sw, err := system.NewScriptWeigher(src, nil, logger)
		if err != nil {
			logger.Printf("viewer: %v", err)
		} else {
			opts = append(opts, system.WithWeigher(sw))
		}
	}

	k, err := system.NewKernel(cfg, catalog, opts...)
	if err != nil {
		log.Fatal(err)
	}
	if *boss != "" && k.StartBossEncounter(*boss) == nil {
		logger.Printf("viewer: unknown boss %q", *boss)
	}

	var watcher *prefabs.Watcher
	if *watch {
		if _, err := os.Stat(prefabs.Dir); err == nil {
			watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
			if err != nil {
				logger.Printf("viewer: watch %s: %v", prefabs.Dir, err)
			} else {
				defer watcher.Close()
			}
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("shmup")

	game := NewGame(k, watcher, logger, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
