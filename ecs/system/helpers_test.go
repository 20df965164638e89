package system

import (
	"io"
	"log"
	"testing"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestKernel builds an idle kernel: the player is spawned but no wave
// runs until the test starts one.
func newTestKernel(t *testing.T, mutate ...func(*ecs.Config, *component.Catalog)) *Kernel {
	t.Helper()
	cfg := ecs.DefaultConfig()
	catalog := component.DefaultCatalog()
	for _, m := range mutate {
		m(&cfg, catalog)
	}
	k, err := NewKernel(cfg, catalog,
		WithWorldOptions(ecs.WithLogger(quietLogger())),
		WithStartWave(0),
	)
	require.NoError(t, err)
	return k
}

func countEvents(w *ecs.World, typ ecs.EventType) int {
	n := 0
	for _, evt := range w.Events() {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func spawnEnemy(t *testing.T, k *Kernel, kind string, x, y float64) *component.Enemy {
	t.Helper()
	e := k.Enemies.SpawnEnemy(k.World, kind, x, y)
	require.NotNil(t, e)
	return e
}

// spawnCombatBoss spawns a boss and skips its entry delay.
func spawnCombatBoss(t *testing.T, k *Kernel, kind string) *component.Boss {
	t.Helper()
	b := k.Boss.SpawnBoss(k.World, kind, 600, 150)
	require.NotNil(t, b)
	b.State = component.BossCombat
	b.Health.Invulnerable = false
	return b
}

// rebuildGrid runs the broad phase the collision pass depends on.
func rebuildGrid(w *ecs.World) {
	ecs.NewGridSystem().Update(w, 0)
}
