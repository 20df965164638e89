package system

import (
	"math"
	"sort"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	legacyBossKind = "boss"
	bossSpawnY     = 150.0
)

// EncounterSystem is the wave director: it composes waves, feeds the spawn
// queue, detects completion, schedules the next wave, starts epic boss
// encounters and rolls random environmental events.
type EncounterSystem struct {
	enemies *EnemySystem
	boss    *BossSystem
	hazards *HazardSystem
}

func NewEncounterSystem(enemies *EnemySystem, boss *BossSystem, hazards *HazardSystem) *EncounterSystem {
	return &EncounterSystem{enemies: enemies, boss: boss, hazards: hazards}
}

func (s *EncounterSystem) Update(w *ecs.World, dt float64) {
	if w == nil || w.GameOver {
		return
	}
	enc := &w.Encounter
	switch {
	case enc.WaveActive:
		s.runWave(w, dt)
	case enc.WaveTimer.Active():
		if enc.WaveTimer.Tick(dt) {
			s.StartWave(w, enc.Wave+1)
		}
	}
	s.rollEvent(w, dt)
}

func (s *EncounterSystem) runWave(w *ecs.World, dt float64) {
	enc := &w.Encounter
	if len(enc.SpawnQueue) > 0 && enc.SpawnTimer.Tick(dt) {
		s.spawnNext(w)
		if len(enc.SpawnQueue) > 0 {
			enc.SpawnTimer.Start(spawnDelay(w.Catalog().Waves, enc.Wave))
		}
	}

	active := s.activeFromWave(w, enc.Wave)
	bossAlive := enc.BossWave && w.Boss != nil && !w.Boss.CleanedUp
	enc.EnemiesRemaining = len(enc.SpawnQueue) + active
	if bossAlive {
		enc.EnemiesRemaining++
	}
	if len(enc.SpawnQueue) == 0 && active == 0 && !bossAlive {
		s.completeWave(w)
	}
}

func (s *EncounterSystem) activeFromWave(w *ecs.World, wave int) int {
	n := 0
	for _, e := range w.Enemies {
		if e.Active && e.Wave == wave {
			n++
		}
	}
	return n
}

func (s *EncounterSystem) completeWave(w *ecs.World) {
	enc := &w.Encounter
	enc.WaveActive = false
	enc.EnemiesRemaining = 0
	enc.SpawnTimer.Stop()
	if enc.BossWave {
		enc.BossWave = false
		w.Boss = nil
	}
	enc.WaveTimer.Start(w.Catalog().Waves.WaveDelay)
	w.Emit(ecs.Event{Type: ecs.EventWaveCompleted, Value: enc.Wave, Amount: float64(enc.TotalEnemies)})
	w.Logger().Printf("encounter: wave %d complete frame=%d", enc.Wave, w.Frame())
}

// StartWave begins wave n immediately. Every epic boss wave replaces the
// regular roster with the next boss in rotation.
func (s *EncounterSystem) StartWave(w *ecs.World, n int) {
	if w == nil {
		return
	}
	if n <= 0 {
		n = 1
	}
	t := w.Catalog().Waves
	enc := &w.Encounter
	enc.Wave = n
	enc.WaveActive = true
	enc.BossWave = false
	enc.WaveTimer.Stop()
	enc.SpawnQueue = nil
	enc.TotalEnemies = 0

	if t.EpicBossEvery > 0 && n%t.EpicBossEvery == 0 && len(t.Bosses) > 0 {
		kind := t.Bosses[(n/t.EpicBossEvery-1)%len(t.Bosses)]
		if s.StartBossEncounter(w, kind) != nil {
			w.Emit(ecs.Event{Type: ecs.EventWaveStarted, Kind: kind, Value: n, Amount: 1})
			w.Logger().Printf("encounter: wave %d boss %s run=%s", n, kind, w.RunID)
			return
		}
	}

	enc.SpawnQueue = s.composeWave(w, n)
	enc.TotalEnemies = len(enc.SpawnQueue)
	enc.EnemiesRemaining = enc.TotalEnemies
	enc.SpawnTimer.Start(spawnDelay(t, n))
	w.Emit(ecs.Event{Type: ecs.EventWaveStarted, Value: n, Amount: float64(enc.TotalEnemies)})
	w.Logger().Printf("encounter: wave %d started enemies=%d run=%s", n, enc.TotalEnemies, w.RunID)
}

// StartBossEncounter spawns an epic boss at the top center and holds the
// current wave open until the boss has been cleaned up.
func (s *EncounterSystem) StartBossEncounter(w *ecs.World, kind string) *component.Boss {
	if w == nil || s.boss == nil {
		return nil
	}
	b := s.boss.SpawnBoss(w, kind, w.Width()/2, bossSpawnY)
	if b == nil {
		return nil
	}
	enc := &w.Encounter
	if enc.Wave == 0 {
		enc.Wave = 1
	}
	enc.WaveActive = true
	enc.BossWave = true
	enc.WaveTimer.Stop()
	enc.TotalEnemies++
	enc.EnemiesRemaining++
	return b
}

// composeWave draws the roster for wave n from the kinds unlocked so far,
// weighted by spawn weight. Every few waves the legacy boss joins.
func (s *EncounterSystem) composeWave(w *ecs.World, n int) []string {
	t := w.Catalog().Waves
	kinds, weights := wavePool(w.Catalog(), n)
	count := int(math.Floor(t.BaseEnemies + float64(n)*t.EnemiesPerWave))
	queue := make([]string, 0, count+1)
	for i := 0; i < count; i++ {
		idx := w.RNG().Weighted(weights)
		if idx < 0 {
			break
		}
		queue = append(queue, kinds[idx])
	}
	if t.BossEvery > 0 && n%t.BossEvery == 0 {
		if _, ok := w.Catalog().Enemy(legacyBossKind); ok {
			queue = append(queue, legacyBossKind)
		}
	}
	return queue
}

// wavePool returns the kinds available in wave n in name order.
func wavePool(c *component.Catalog, n int) ([]string, []float64) {
	t := c.Waves
	names := make([]string, 0, len(c.Enemies))
	for name := range c.Enemies {
		names = append(names, name)
	}
	sort.Strings(names)

	var kinds []string
	var weights []float64
	for _, name := range names {
		k := c.Enemies[name]
		if unlock, ok := t.Unlocks[name]; ok {
			if n < unlock {
				continue
			}
		} else if !k.Advanced || n < t.AdvancedFrom {
			continue
		}
		weight := k.SpawnWeight
		if weight <= 0 {
			weight = 1
		}
		kinds = append(kinds, name)
		weights = append(weights, weight)
	}
	return kinds, weights
}

func spawnDelay(t component.WaveTuning, n int) float64 {
	return math.Max(t.MinSpawnDelay, t.BaseSpawnDelay-float64(n)*t.SpawnDelayStep)
}

// spawnNext pops the queue head. A spawn refused by the enemy cap is put
// back and retried after the next delay; an unknown kind is dropped.
func (s *EncounterSystem) spawnNext(w *ecs.World) {
	enc := &w.Encounter
	if s.enemies == nil || len(enc.SpawnQueue) == 0 {
		return
	}
	kind := enc.SpawnQueue[0]
	if _, ok := w.Catalog().Enemy(kind); !ok {
		w.Logger().Printf("encounter: wave %d dropped unknown kind %q", enc.Wave, kind)
		enc.SpawnQueue = enc.SpawnQueue[1:]
		return
	}
	pos := s.enemies.SpawnPosition(w)
	e := s.enemies.SpawnEnemy(w, kind, pos.X, pos.Y)
	if e == nil {
		return
	}
	enc.SpawnQueue = enc.SpawnQueue[1:]
	e.Wave = enc.Wave
	if e.Swarm == nil {
		return
	}
	if g, ok := w.Swarms[e.Swarm.GroupID]; ok {
		for _, id := range g.Members {
			if c, ok := w.Lookup(id); ok {
				if m, ok := c.(*component.Enemy); ok {
					m.Wave = enc.Wave
				}
			}
		}
	}
}

// rollEvent occasionally starts a random environmental event.
func (s *EncounterSystem) rollEvent(w *ecs.World, dt float64) {
	t := w.Catalog().Waves
	if s.hazards == nil || t.EventChance <= 0 {
		return
	}
	rng := w.RNG()
	if !rng.Chance(t.EventChance * dt) {
		return
	}
	name := EnvironmentalEvents[rng.Intn(len(EnvironmentalEvents))]
	s.hazards.ActivateEvent(w, name, rng.Range(t.EventMinMs, t.EventMaxMs))
}
