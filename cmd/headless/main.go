// Command headless runs the simulation without a window and reports the
// outcome. Snapshots can be streamed to a msgpack file for offline replay.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/system"
	"github.com/milk9111/shmup/prefabs"
	"gopkg.in/yaml.v3"
)

// cueCounter tallies audio cues so runs can be compared without a mixer.
type cueCounter struct {
	Hits      int            `yaml:"hits"`
	Deaths    map[string]int `yaml:"deaths"`
	Abilities map[string]int `yaml:"abilities"`
}

func newCueCounter() *cueCounter {
	return &cueCounter{Deaths: make(map[string]int), Abilities: make(map[string]int)}
}

func (c *cueCounter) OnHit(_, _, _ float64) { c.Hits++ }
func (c *cueCounter) OnDeath(_, _ float64, kind string) { c.Deaths[kind]++ }
func (c *cueCounter) OnAbilityUsed(_, _ float64, a string) { c.Abilities[a]++ }

type report struct {
	RunID     string          `yaml:"run_id"`
	Seed      uint64          `yaml:"seed"`
	Frames    uint64          `yaml:"frames"`
	TimeMs    float64         `yaml:"time_ms"`
	Score     float64         `yaml:"score"`
	Wave      int             `yaml:"wave"`
	Lives     int             `yaml:"lives"`
	GameOver  bool            `yaml:"game_over"`
	Events    map[string]int  `yaml:"events"`
	Pool      ecs.PoolStats   `yaml:"projectile_pool"`
	Cues      *cueCounter     `yaml:"cues"`
	Snapshots int             `yaml:"snapshots_written,omitempty"`
	DumpFile  string          `yaml:"dump_file,omitempty"`
	Weigher   string          `yaml:"ability_weigher"`
	StartBoss string          `yaml:"start_boss,omitempty"`
	StartWave int             `yaml:"start_wave"`
	Secondary string          `yaml:"secondary,omitempty"`
	Arsenal   ecs.ArsenalView `yaml:"arsenal"`
	Stopped   bool            `yaml:"stopped_on_game_over"`
}

func main() {
	frames := flag.Int("frames", 3600, "frames to simulate")
	dt := flag.Float64("dt", 16, "frame length in ms")
	seed := flag.Uint64("seed", 0, "rng seed (0 keeps world.yaml)")
	wave := flag.Int("wave", 1, "first wave")
	boss := flag.String("boss", "", "start straight into this boss encounter")
	runID := flag.String("run", "", "run id (uuid); random when empty")
	dump := flag.String("dump", "", "write msgpack snapshots to this file")
	every := flag.Int("every", 60, "frames between dumped snapshots")
	script := flag.String("script", prefabs.AbilityWeightsScript, "ability weight script; empty uses the built-in weights")
	secondary := flag.String("secondary", "", "unlock and equip this weapon in the secondary slot")
	autopilot := flag.Bool("autopilot", true, "weave and fire instead of idling")
	stop := flag.Bool("stop", true, "stop early on game over")
	verbose := flag.Bool("v", false, "log kernel messages")
	flag.Parse()

	logger := log.New(os.Stderr, "headless: ", log.LstdFlags)
	kernelLog := log.New(io.Discard, "", 0)
	if *verbose {
		kernelLog = log.New(os.Stderr, "", log.LstdFlags)
	}

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		logger.Printf("%v; using defaults", err)
		cfg = ecs.DefaultConfig()
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		logger.Printf("%v; using built-in catalog", err)
		catalog = component.DefaultCatalog()
	}

	id := uuid.New()
	if *runID != "" {
		if id, err = uuid.Parse(*runID); err != nil {
			logger.Fatalf("run id: %v", err)
		}
	}

	cues := newCueCounter()
	counts := make(map[string]int)
	opts := []system.KernelOption{
		system.WithWorldOptions(
			ecs.WithLogger(kernelLog),
			ecs.WithRunID(id),
			ecs.WithAudio(cues),
			ecs.WithSubscriber(ecs.SubscriberFunc(func(evt ecs.Event) {
				counts[string(evt.Type)]++
			})),
		),
		system.WithStartWave(*wave),
	}
	if *boss != "" {
		opts = append(opts, system.WithStartWave(0))
	}

	weigher := "default"
	if *script != "" {
		src, err := prefabs.LoadScript(*script)
		if err != nil {
			logger.Fatalf("script: %v", err)
		}
		sw, err := system.NewScriptWeigher(src, nil, kernelLog)
		if err != nil {
			logger.Fatalf("script: %v", err)
		}
		opts = append(opts, system.WithWeigher(sw))
		weigher = *script
	}

	k, err := system.NewKernel(cfg, catalog, opts...)
	if err != nil {
		logger.Fatal(err)
	}
	if *boss != "" && k.StartBossEncounter(*boss) == nil {
		logger.Fatalf("unknown boss %q", *boss)
	}
	if *secondary != "" {
		kind := component.WeaponKind(*secondary)
		k.UnlockWeapon(kind)
		if !k.EquipWeapon(kind, component.SlotSecondary) {
			logger.Fatalf("unknown weapon %q", *secondary)
		}
	}

	var out *bufio.Writer
	written := 0
	if *dump != "" {
		f, err := os.Create(*dump)
		if err != nil {
			logger.Fatal(err)
		}
		defer f.Close()
		out = bufio.NewWriter(f)
		defer out.Flush()
	}

	stopped := false
	for frame := 0; frame < *frames; frame++ {
		in := ecs.Input{}
		if *autopilot {
			in = autopilotInput(frame)
		}
		k.Update(*dt, in)

		if out != nil && *every > 0 && frame%*every == 0 {
			data, err := ecs.EncodeSnapshot(k.Snapshot())
			if err != nil {
				logger.Fatal(err)
			}
			if _, err := out.Write(data); err != nil {
				logger.Fatal(err)
			}
			written++
		}
		if *stop && k.World.GameOver {
			stopped = true
			break
		}
	}

	snap := k.Snapshot()
	rep := report{
		RunID:     snap.RunID,
		Seed:      cfg.Seed,
		Frames:    snap.Frame,
		TimeMs:    snap.TimeMs,
		Score:     snap.Score,
		Wave:      snap.Wave.Wave,
		Lives:     snap.Player.Lives,
		GameOver:  snap.GameOver,
		Events:    counts,
		Pool:      k.Projectiles.Stats(k.World),
		Cues:      cues,
		Snapshots: written,
		DumpFile:  *dump,
		Secondary: *secondary,
		Arsenal:   snap.Player.Arsenal,
		Weigher:   weigher,
		StartBoss: *boss,
		StartWave: *wave,
		Stopped:   stopped,
	}
	data, err := yaml.Marshal(rep)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Print(string(data))
}

// autopilotInput weaves across the bottom of the screen while firing, with
// periodic shield, laser and bullet time use. The secondary slot pulses so
// charge weapons get released.
func autopilotInput(frame int) ecs.Input {
	f := float64(frame)
	return ecs.Input{
		Move:    cp.Vector{X: math.Sin(f / 45), Y: math.Cos(f/120) * 0.3},
		Shoot:   true,
		Shield:  frame%600 == 300,
		Ability: frame%1500 == 750,

		Secondary:  frame%90 < 60,
		BulletTime: frame%2400 == 1200,
	}
}
