package system

import (
	"testing"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEffectActivationGates(t *testing.T) {
	cases := []struct {
		name  string
		kind  component.TimeEffectKind
		setup func(w *ecs.World)
		want  bool
	}{
		{"bullet time", component.TimeBulletTime, func(*ecs.World) {}, true},
		{"freeze", component.TimeFreeze, func(*ecs.World) {}, true},
		{"accelerate", component.TimeAccelerate, func(*ecs.World) {}, true},
		{"unknown kind", "rewind", func(*ecs.World) {}, false},
		{"already running", component.TimeFreeze, func(w *ecs.World) { w.Time.Freeze.Active = true }, false},
		{"cooling down", component.TimeAccelerate, func(w *ecs.World) { w.Time.Accelerate.Cooldown.Start(1) }, false},
		{"low energy", component.TimeBulletTime, func(w *ecs.World) { w.Time.Energy = 19.9 }, false},
		{"minimum energy", component.TimeBulletTime, func(w *ecs.World) { w.Time.Energy = 20 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := newTestKernel(t)
			tc.setup(k.World)
			assert.Equal(t, tc.want, k.ActivateTimeEffect(tc.kind, 0))
			if tc.want {
				assert.Equal(t, 1, countEvents(k.World, ecs.EventTimeEffectStarted))
				assert.Equal(t, tc.kind, k.World.Time.Current)
			}
		})
	}
}

func TestTimeEffectUsesTunedAndExplicitDuration(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	require.True(t, k.ActivateTimeEffect(component.TimeAccelerate, 0))
	assert.Equal(t, 1500.0, w.Time.Accelerate.Remaining.Remaining())
	assert.Equal(t, 10000.0, w.Time.Accelerate.Cooldown.Remaining())

	require.True(t, k.ActivateTimeEffect(component.TimeFreeze, 300))
	assert.Equal(t, 300.0, w.Time.Freeze.Remaining.Remaining())
}

func TestTimeScaleEasesTowardTarget(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	require.True(t, k.ActivateTimeEffect(component.TimeBulletTime, 0))

	k.Time.Update(w, 16)
	assert.InDelta(t, 1-0.7*0.048, w.TimeScale(), 1e-9)

	for i := 0; i < 120 && w.Time.BulletTime.Active; i++ {
		k.Time.Update(w, 16)
	}
	assert.Less(t, w.TimeScale(), 0.35)

	for i := 0; i < 400; i++ {
		k.Time.Update(w, 16)
	}
	assert.False(t, w.Time.BulletTime.Active)
	assert.Equal(t, 1.0, w.TimeScale(), "snaps once within reach")
	assert.Equal(t, 1.0, w.Time.Target)
}

func TestBulletTimeDrainsAndRegensEnergy(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	require.True(t, k.ActivateTimeEffect(component.TimeBulletTime, 10000))

	k.Time.Update(w, 100)
	assert.InDelta(t, 95, w.Time.Energy, 1e-9)

	w.Time.Energy = 3
	k.Time.Update(w, 100)
	assert.False(t, w.Time.BulletTime.Active, "running dry ends the effect")
	assert.Equal(t, 1, countEvents(w, ecs.EventTimeEffectEnded))
	assert.InDelta(t, 2, w.Time.Energy, 1e-9, "regen resumes the same tick")

	k.Time.Update(w, 1000)
	assert.InDelta(t, 22, w.Time.Energy, 1e-9)
	w.Time.Energy = 99.9
	k.Time.Update(w, 1000)
	assert.Equal(t, 100.0, w.Time.Energy)
}

func TestTimeTargetFallsBackToRunningEffect(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	require.True(t, k.ActivateTimeEffect(component.TimeAccelerate, 1000))
	require.True(t, k.ActivateTimeEffect(component.TimeFreeze, 100))

	k.Time.Update(w, 50)
	assert.Equal(t, 0.0, w.Time.Target, "the latest effect wins")
	k.Time.Update(w, 50)
	assert.False(t, w.Time.Freeze.Active)
	assert.Equal(t, component.TimeAccelerate, w.Time.Current)
	assert.Equal(t, 2.0, w.Time.Target)
}

func TestDeactivateTimeEffects(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	require.True(t, k.ActivateTimeEffect(component.TimeFreeze, 0))
	require.True(t, k.ActivateTimeEffect(component.TimeBulletTime, 0))

	k.DeactivateTimeEffects()
	assert.Empty(t, w.Time.Active())
	assert.Equal(t, 1.0, w.Time.Target)
	assert.Equal(t, 2, countEvents(w, ecs.EventTimeEffectEnded))
	assert.True(t, w.Time.Freeze.Cooldown.Active(), "cooldowns keep running")
	assert.False(t, k.ActivateTimeEffect(component.TimeFreeze, 0))
}

func TestFreezeHaltsScaledSystems(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "basic", 600, 100)
	require.True(t, k.ActivateTimeEffect(component.TimeFreeze, 5000))

	for i := 0; i < 120; i++ {
		k.Update(16, ecs.Input{})
	}
	require.Zero(t, k.TimeScale())
	pos := e.Pos
	survived := w.Player.Stats.SurvivalMs
	now := w.Now()

	k.Update(16, ecs.Input{})
	assert.Equal(t, pos, e.Pos)
	assert.Equal(t, survived, w.Player.Stats.SurvivalMs)
	assert.InDelta(t, now+16, w.Now(), 1e-9)
	assert.InDelta(t, 5000-121*16, w.Time.Freeze.Remaining.Remaining(), 1e-6, "effects count real time")
}

func TestAccelerateSpeedsUpScaledSystems(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	w.SetTimeScale(2)
	w.Time.Target = 2
	w.Time.Accelerate.Active = true
	w.Time.Accelerate.Remaining.Start(1000)
	w.Time.Current = component.TimeAccelerate

	before := w.Player.Stats.SurvivalMs
	k.Update(16, ecs.Input{})
	assert.InDelta(t, before+32, w.Player.Stats.SurvivalMs, 1e-9)
}

func TestComboMilestoneTriggersBulletTime(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	w.Combo = 23
	k.Damage.DamageEnemy(w, spawnEnemy(t, k, "basic", 600, 300), 100, w.Player.ID)
	assert.False(t, w.Time.BulletTime.Active)

	k.Damage.DamageEnemy(w, spawnEnemy(t, k, "basic", 300, 300), 100, w.Player.ID)
	require.Equal(t, 25, w.Combo)
	assert.True(t, w.Time.BulletTime.Active)
	assert.Equal(t, 2000.0, w.Time.BulletTime.Remaining.Remaining())
}

func TestBulletTimeFromInput(t *testing.T) {
	k := newTestKernel(t)
	k.Update(16, ecs.Input{BulletTime: true})
	assert.True(t, k.World.Time.BulletTime.Active)
	assert.Less(t, k.TimeScale(), 1.0)
}
