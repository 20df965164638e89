package system

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedRun = uuid.MustParse("6f1c2b1e-8d3a-4c55-9a0e-1f2d3c4b5a69")

func newRunKernel(t *testing.T, seed uint64) *Kernel {
	t.Helper()
	cfg := ecs.DefaultConfig()
	cfg.Seed = seed
	k, err := NewKernel(cfg, nil, WithWorldOptions(
		ecs.WithLogger(quietLogger()),
		ecs.WithRunID(fixedRun),
	))
	require.NoError(t, err)
	return k
}

// scriptedInput weaves the ship left and right while firing, with the
// shield and the laser triggered now and then.
func scriptedInput(frame int) ecs.Input {
	in := ecs.Input{Shoot: true}
	in.Move = cp.Vector{X: math.Sin(float64(frame) / 40), Y: math.Cos(float64(frame)/90) * 0.5}
	in.Shield = frame%700 == 350
	in.Ability = frame%1500 == 100
	return in
}

func TestNewKernelStartsFirstWave(t *testing.T) {
	k := newRunKernel(t, 1)
	w := k.World

	require.NotNil(t, w.Player)
	assert.True(t, w.Encounter.WaveActive)
	assert.Equal(t, 1, w.Encounter.Wave)
	assert.Equal(t, fixedRun, w.RunID)

	snap := k.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Wave.Wave)
	assert.Equal(t, 3, snap.Player.Lives)
	assert.True(t, snap.Player.Alive)
}

func TestNewKernelRejectsInvalidConfig(t *testing.T) {
	cfg := ecs.DefaultConfig()
	cfg.WorldWidth = 0
	k, err := NewKernel(cfg, nil)
	assert.Nil(t, k)
	assert.ErrorIs(t, err, ecs.ErrInvalidConfig)
}

func TestNewKernelRejectsBrokenCatalog(t *testing.T) {
	c := component.DefaultCatalog()
	c.Player.Bullet = "plasma"
	_, err := NewKernel(ecs.DefaultConfig(), c)
	assert.ErrorIs(t, err, component.ErrInvalidCatalog)
}

func TestKernelNilSafe(t *testing.T) {
	var k *Kernel
	k.Update(16, ecs.Input{})
	assert.Nil(t, k.Snapshot())
}

func TestSetCatalogKeepsLiveEntities(t *testing.T) {
	k := newTestKernel(t)
	e := spawnEnemy(t, k, "basic", 300, 300)

	c := component.DefaultCatalog()
	basic := c.Enemies["basic"]
	basic.Health = 99
	c.Enemies["basic"] = basic
	require.NoError(t, k.SetCatalog(c))

	assert.Equal(t, 20.0, e.Max)
	assert.Equal(t, 99.0, spawnEnemy(t, k, "basic", 500, 300).Max)
	assert.Error(t, k.SetCatalog(nil))
}

func TestDeterministicReplay(t *testing.T) {
	a := newRunKernel(t, 42)
	b := newRunKernel(t, 42)

	for frame := 0; frame < 3000; frame++ {
		in := scriptedInput(frame)
		a.Update(16, in)
		b.Update(16, in)
		if frame%250 != 0 {
			continue
		}
		da, err := ecs.EncodeSnapshot(a.Snapshot())
		require.NoError(t, err)
		db, err := ecs.EncodeSnapshot(b.Snapshot())
		require.NoError(t, err)
		require.Equal(t, da, db, "frame %d", frame)
	}
	assert.Equal(t, a.World.Score, b.World.Score)
	assert.Equal(t, a.World.Frame(), b.World.Frame())
}

func TestSeedsDiverge(t *testing.T) {
	a := newRunKernel(t, 1)
	b := newRunKernel(t, 2)
	for frame := 0; frame < 600; frame++ {
		a.Update(16, ecs.Input{})
		b.Update(16, ecs.Input{})
	}
	assert.NotEqual(t, a.Snapshot().Enemies, b.Snapshot().Enemies)
}

func TestLongRunStaysInBounds(t *testing.T) {
	k := newRunKernel(t, 7)
	w := k.World
	cfg := w.Config()
	k.StartWave(9)

	inHealth := func(h *component.Health) bool {
		return h.Current >= 0 && h.Current <= h.Max
	}
	for frame := 0; frame < 6000; frame++ {
		k.Update(16, scriptedInput(frame))

		require.LessOrEqual(t, k.Projectiles.Stats(w).Active, cfg.MaxProjectiles)
		require.LessOrEqual(t, w.ActiveEnemies(), cfg.MaxEnemies)
		require.LessOrEqual(t, w.ActiveHazards(), cfg.MaxHazards)

		p := w.Player
		require.True(t, inHealth(&p.Health), "player health %v", p.Current)
		if p.Alive() {
			r := p.Shape.Radius
			require.True(t, p.Pos.X >= r && p.Pos.X <= w.Width()-r, "player x %v", p.Pos.X)
			require.True(t, p.Pos.Y >= r && p.Pos.Y <= w.Height()-r, "player y %v", p.Pos.Y)
		}
		require.True(t, p.ShieldEnergy >= 0 && p.ShieldEnergy <= p.MaxShieldEnergy)
		for _, e := range w.Enemies {
			require.True(t, inHealth(&e.Health), "enemy %d health %v", e.ID, e.Current)
		}
		if b := w.Boss; b != nil {
			require.True(t, inHealth(&b.Health), "boss health %v", b.Current)
			require.GreaterOrEqual(t, b.Phase, 1)
			require.LessOrEqual(t, b.Phase, b.Phases)
		}
		require.GreaterOrEqual(t, w.Score, 0.0)
	}
}

func TestKernelPassthroughs(t *testing.T) {
	k := newTestKernel(t)

	assert.True(t, k.ActivateLaser())
	assert.False(t, k.ActivateLaser())
	assert.True(t, k.ActivateEvent(ElectricStorm, 1000))
	assert.True(t, k.DeactivateEvent(ElectricStorm))

	k.StartWave(0)
	assert.Equal(t, 1, k.World.Encounter.Wave, "non-positive waves start at 1")
}
