package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// Environmental events the hazard field understands.
const (
	MeteorShower       = "meteorShower"
	GravitationalStorm = "gravitationalStorm"
	ElectricStorm      = "electricStorm"
	SolarActivity      = "solarActivity"
)

// EnvironmentalEvents lists every event name in a fixed order.
var EnvironmentalEvents = []string{MeteorShower, GravitationalStorm, ElectricStorm, SolarActivity}

const (
	hazardSpawnMs      = 2000.0
	meteorShowerScale  = 5.0
	gravityStormScale  = 2.0
	electricStormScale = 1.5
	solarActivityScale = 3.0

	fragmentKind     = "meteor"
	fragmentCount    = 3
	fragmentDistance = 30.0
	arcCount         = 8
	arcOffset        = 50.0
	arcRadius        = 30.0
	arcDamage        = 30.0
	wormholeCooldown = 1000.0
	wormholeSpin     = 0.02
	aimSpreadX       = 400.0
	aimSpreadY       = 200.0
	insetMargin      = 100.0
)

// HazardSystem spawns environmental hazards, runs their per-tick effects and
// owns the timed environmental events that modify them.
type HazardSystem struct {
	damage *DamageResolver
	proj   *ProjectileSystem
	status *StatusSystem
}

func NewHazardSystem(damage *DamageResolver, proj *ProjectileSystem, status *StatusSystem) *HazardSystem {
	return &HazardSystem{damage: damage, proj: proj, status: status}
}

func (s *HazardSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	s.tickEvents(w, dt)

	env := &w.Environment
	env.SpawnTimer += dt
	if env.SpawnTimer >= hazardSpawnMs {
		env.SpawnTimer = 0
		s.trySpawn(w)
	}

	for _, h := range w.Hazards {
		if !h.Active || h.Dead {
			continue
		}
		s.updateHazard(w, h, dt)
	}
}

// trySpawn rolls each kind in name order and spawns at most one hazard.
func (s *HazardSystem) trySpawn(w *ecs.World) {
	if w.ActiveHazards() >= w.Config().MaxHazards {
		return
	}
	kinds := w.Catalog().Hazards
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	scale := 1.0
	if w.Environment.IsActive(SolarActivity) {
		scale = solarActivityScale
	}
	for _, name := range names {
		chance := kinds[name].SpawnChance * scale
		if name == fragmentKind && w.Environment.IsActive(MeteorShower) {
			chance *= meteorShowerScale
		}
		if w.RNG().Chance(chance) {
			pos := s.edgePosition(w, kinds[name])
			s.SpawnHazard(w, name, pos.X, pos.Y)
			return
		}
	}
}

// edgePosition enters from the top, right or left edge, or appears inside
// the field. Sweeping hazards always enter from the left.
func (s *HazardSystem) edgePosition(w *ecs.World, k component.HazardKind) cp.Vector {
	rng := w.RNG()
	width, height := w.Width(), w.Height()
	if k.Wave {
		return cp.Vector{X: -k.Size / 2, Y: rng.Range(0, height)}
	}
	switch rng.Intn(4) {
	case 0:
		return cp.Vector{X: rng.Range(0, width), Y: -k.Size}
	case 1:
		return cp.Vector{X: width + k.Size, Y: rng.Range(0, height)}
	case 2:
		return cp.Vector{X: -k.Size, Y: rng.Range(0, height)}
	}
	return insidePosition(w)
}

func insidePosition(w *ecs.World) cp.Vector {
	rng := w.RNG()
	return cp.Vector{
		X: insetMargin + rng.Float64()*math.Max(0, w.Width()-2*insetMargin),
		Y: insetMargin + rng.Float64()*math.Max(0, w.Height()-2*insetMargin),
	}
}

// SpawnHazard creates a hazard of kind at (x, y). It returns nil for an
// unknown kind or once the hazard cap is reached. Paired kinds bring their
// partner at a random spot inside the field.
func (s *HazardSystem) SpawnHazard(w *ecs.World, kind string, x, y float64) *component.Hazard {
	if w == nil {
		return nil
	}
	k, ok := w.Catalog().Hazard(kind)
	if !ok {
		w.Logger().Printf("hazard: unknown kind %q", kind)
		return nil
	}
	h := s.add(w, k, cp.Vector{X: x, Y: y})
	if h == nil || !k.Paired {
		return h
	}
	pos := insidePosition(w)
	if pair := s.add(w, k, pos); pair != nil {
		h.PairID = pair.ID
		pair.PairID = h.ID
	}
	return h
}

func (s *HazardSystem) add(w *ecs.World, k component.HazardKind, pos cp.Vector) *component.Hazard {
	if w.ActiveHazards() >= w.Config().MaxHazards {
		return nil
	}
	rng := w.RNG()
	h := &component.Hazard{
		Body: component.Body{
			ID:       w.NewID(),
			Pos:      pos,
			Shape:    component.Circle(k.Size / 2),
			Layer:    w.Config().Layers.Enemy,
			Active:   true,
			Rotation: rng.Angle(),
			Alpha:    1,
			Scale:    1,
		},
		Health:         component.NewHealth(k.Health),
		Kind:           k.Name,
		Damage:         k.Damage,
		Destroyable:    k.Destroyable,
		ScoreValue:     k.Score,
		RotationSpeed:  k.RotationSpeed,
		Pull:           k.PullStrength,
		PullRadius:     k.PullRadius,
		ElectricRadius: k.ElectricRadius,
		ShockChance:    k.ShockChance,
		TeleportRadius: k.TeleportRadius,
		Splits:         k.Splits,
		Wave:           k.Wave,
	}
	if k.Life > 0 {
		h.Timed = true
		h.Life.Start(k.Life)
	}
	switch hazardMotion(h) {
	case motionSweep:
		h.Vel = cp.Vector{X: k.Speed}
	case motionDrift:
		h.Vel = cp.Vector{X: rng.Centered() * k.Speed, Y: rng.Centered() * k.Speed}
	case motionWander:
		h.Vel = cp.Vector{X: rng.Centered() * k.Speed * 2, Y: rng.Centered() * k.Speed * 2}
	default:
		target := cp.Vector{
			X: w.Width()/2 + rng.Centered()*aimSpreadX,
			Y: w.Height()/2 + rng.Centered()*aimSpreadY,
		}
		h.Vel = common.Toward(pos, target, k.Speed)
	}
	w.Hazards = append(w.Hazards, h)
	w.Register(h)
	w.Emit(ecs.Event{Type: ecs.EventHazardSpawned, Entity: h.ID, Kind: h.Kind, X: pos.X, Y: pos.Y})
	return h
}

type motion uint8

const (
	motionAimed motion = iota
	motionDrift
	motionWander
	motionSweep
)

func hazardMotion(h *component.Hazard) motion {
	switch {
	case h.Wave:
		return motionSweep
	case h.PullRadius > 0 || h.TeleportRadius > 0:
		return motionDrift
	case h.ElectricRadius > 0:
		return motionWander
	}
	return motionAimed
}

func (s *HazardSystem) updateHazard(w *ecs.World, h *component.Hazard, dt float64) {
	frames := common.Frames(dt)
	h.Integrate(dt)
	h.Rotation += h.RotationSpeed * frames

	switch {
	case h.PullRadius > 0:
		s.pull(w, h, dt)
	case h.ElectricRadius > 0:
		s.shock(w, h)
	case h.TeleportRadius > 0:
		h.Rotation += wormholeSpin * frames
		s.teleport(w, h, dt)
	case h.Wave:
		s.sweep(w, h, dt)
	}

	s.bounds(w, h)
	if h.Active && h.Timed && h.Life.Tick(dt) {
		s.Destroy(w, h, 0)
	}
}

// pull drags the player and player bullets toward the center with a force
// that falls off linearly to the edge of the pull radius. The player is
// hurt while inside the core.
func (s *HazardSystem) pull(w *ecs.World, h *component.Hazard, dt float64) {
	strength := h.Pull
	if w.Environment.IsActive(GravitationalStorm) {
		strength *= gravityStormScale
	}
	frames := common.Frames(dt)
	if p := w.PlayerTarget(); p != nil {
		if d := p.Pos.Distance(h.Pos); d > 0 && d < h.PullRadius {
			force := strength * (1 - d/h.PullRadius)
			p.Vel = p.Vel.Sub(p.Pos.Sub(h.Pos).Mult(force * frames / d))
			if d < h.Shape.Radius && s.damage != nil {
				s.damage.DamageOverTime(w, p, h.Damage*dt/1000)
			}
		}
	}
	if s.proj == nil {
		return
	}
	for _, b := range s.proj.ByLayer(w, w.Config().Layers.PlayerBullet) {
		if d := b.Pos.Distance(h.Pos); d > 0 && d < h.PullRadius {
			force := strength * (1 - d/h.PullRadius)
			b.Vel = b.Vel.Sub(b.Pos.Sub(h.Pos).Mult(force * frames / d))
		}
	}
}

// shock zaps a player inside the electric radius now and then.
func (s *HazardSystem) shock(w *ecs.World, h *component.Hazard) {
	p := w.PlayerTarget()
	if p == nil || s.damage == nil || p.Pos.Distance(h.Pos) >= h.ElectricRadius {
		return
	}
	if !w.RNG().Chance(h.ShockChance) {
		return
	}
	dmg := h.Damage
	if w.Environment.IsActive(ElectricStorm) {
		dmg *= electricStormScale
	}
	if s.damage.DamagePlayer(w, p, dmg, h.ID) > 0 && s.status != nil {
		s.status.Apply(w, p, component.StatusShocked)
	}
}

// teleport moves a player entering the mouth to the paired wormhole. Both
// ends then refuse to fire again until the cooldown passes.
func (s *HazardSystem) teleport(w *ecs.World, h *component.Hazard, dt float64) {
	h.Teleport.Tick(dt)
	p := w.PlayerTarget()
	if p == nil || h.Teleport.Active() || p.Pos.Distance(h.Pos) >= h.TeleportRadius {
		return
	}
	c, ok := w.Lookup(h.PairID)
	if !ok {
		return
	}
	pair, ok := c.(*component.Hazard)
	if !ok {
		return
	}
	p.Pos = pair.Pos
	h.Teleport.Start(wormholeCooldown)
	pair.Teleport.Start(wormholeCooldown)
	w.Emit(ecs.Event{Type: ecs.EventEnvironmental, Entity: h.ID, Source: p.ID, Kind: h.Kind, X: pair.Pos.X, Y: pair.Pos.Y})
}

// sweep burns the player inside the flare front, which is half as tall as
// it is wide.
func (s *HazardSystem) sweep(w *ecs.World, h *component.Hazard, dt float64) {
	p := w.PlayerTarget()
	if p == nil || s.damage == nil {
		return
	}
	r := h.Shape.Radius
	if math.Abs(p.Pos.X-h.Pos.X) < r && math.Abs(p.Pos.Y-h.Pos.Y) < r/2 {
		s.damage.DamageOverTime(w, p, h.Damage*dt/1000)
	}
}

// bounds retires aimed and sweeping hazards that leave the field and
// bounces wandering ones off the edges.
func (s *HazardSystem) bounds(w *ecs.World, h *component.Hazard) {
	margin := h.Shape.Radius * 2
	switch hazardMotion(h) {
	case motionAimed, motionSweep:
		if !w.InBounds(h.Pos, margin) {
			h.Active = false
		}
	case motionWander:
		if h.Pos.X < margin || h.Pos.X > w.Width()-margin {
			h.Vel.X = -h.Vel.X
			h.Pos.X = common.Clamp(h.Pos.X, margin, w.Width()-margin)
		}
		if h.Pos.Y < margin || h.Pos.Y > w.Height()-margin {
			h.Vel.Y = -h.Vel.Y
			h.Pos.Y = common.Clamp(h.Pos.Y, margin, w.Height()-margin)
		}
	}
}

// Destroy removes a hazard exactly once and runs its break-up effect.
// Score is granted only when the player destroyed it.
func (s *HazardSystem) Destroy(w *ecs.World, h *component.Hazard, source ecs.Entity) {
	if w == nil || h == nil || h.Dead {
		return
	}
	h.Dead = true
	h.Active = false
	h.Current = 0

	if h.Splits {
		for i := 0; i < fragmentCount; i++ {
			angle := 2 * math.Pi * float64(i) / fragmentCount
			pos := h.Pos.Add(cp.ForAngle(angle).Mult(fragmentDistance))
			s.SpawnHazard(w, fragmentKind, pos.X, pos.Y)
		}
	}
	if h.ElectricRadius > 0 {
		s.discharge(w, h)
	}

	score := 0.0
	if h.ScoreValue > 0 && w.Player != nil && source.Valid() && source == w.Player.ID {
		score = h.ScoreValue
		w.Score += score
	}
	w.Emit(ecs.Event{Type: ecs.EventHazardDestroyed, Entity: h.ID, Source: source, Kind: h.Kind, X: h.Pos.X, Y: h.Pos.Y, Amount: score})
}

// discharge releases a ring of arcs; a player inside any arc takes one hit.
func (s *HazardSystem) discharge(w *ecs.World, h *component.Hazard) {
	p := w.PlayerTarget()
	if p == nil || s.damage == nil {
		return
	}
	for i := 0; i < arcCount; i++ {
		center := h.Pos.Add(cp.ForAngle(2 * math.Pi * float64(i) / arcCount).Mult(arcOffset))
		if p.Pos.Distance(center) < arcRadius {
			s.damage.DamagePlayer(w, p, arcDamage, h.ID)
			return
		}
	}
}

// ActivateEvent starts or refreshes an environmental event for ms
// milliseconds. Unknown names are logged and ignored.
func (s *HazardSystem) ActivateEvent(w *ecs.World, name string, ms float64) bool {
	if w == nil || ms <= 0 {
		return false
	}
	if !knownEvent(name) {
		w.Logger().Printf("hazard: unknown environmental event %q", name)
		return false
	}
	env := &w.Environment
	for i := range env.Events {
		if env.Events[i].Name == name {
			env.Events[i].Remaining.Start(ms)
			return true
		}
	}
	ev := component.EnvironmentEvent{Name: name}
	ev.Remaining.Start(ms)
	env.Events = append(env.Events, ev)
	w.Emit(ecs.Event{Type: ecs.EventEnvironmental, Kind: name, Amount: ms, Value: 1})
	w.Logger().Printf("hazard: event %s started for %.0fms run=%s", name, ms, w.RunID)
	return true
}

// DeactivateEvent ends an event early. Multipliers are derived from the
// running set, so ending an event restores the base values exactly.
func (s *HazardSystem) DeactivateEvent(w *ecs.World, name string) bool {
	if w == nil {
		return false
	}
	env := &w.Environment
	for i := range env.Events {
		if env.Events[i].Name != name {
			continue
		}
		env.Events = append(env.Events[:i], env.Events[i+1:]...)
		w.Emit(ecs.Event{Type: ecs.EventEnvironmental, Kind: name, Value: 0})
		return true
	}
	return false
}

func (s *HazardSystem) tickEvents(w *ecs.World, dt float64) {
	env := &w.Environment
	var expired []string
	for i := range env.Events {
		if env.Events[i].Remaining.Tick(dt) {
			expired = append(expired, env.Events[i].Name)
		}
	}
	for _, name := range expired {
		s.DeactivateEvent(w, name)
	}
}

func knownEvent(name string) bool {
	for _, n := range EnvironmentalEvents {
		if n == name {
			return true
		}
	}
	return false
}
