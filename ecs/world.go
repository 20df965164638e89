package ecs

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs/component"
)

// World is the simulation context: it owns every entity in flat collections
// together with the grid, the projectile pool, the event queue and the
// collaborators. There is one World per running game.
type World struct {
	cfg     Config
	catalog *component.Catalog

	RunID uuid.UUID

	log         *log.Logger
	rng         *RNG
	grid        *SpatialGrid
	events      EventQueue
	subscribers []Subscriber
	scheduler   *Scheduler
	ids         entityStore
	frame       uint64
	now         float64
	input       Input
	timeScale   float64

	Player      *component.Player
	Enemies     []*component.Enemy
	Projectiles *ProjectilePool
	Boss        *component.Boss
	Swarms      map[component.GroupID]*component.SwarmGroup
	Hazards     []*component.Hazard
	Powerups    []*component.Powerup
	Encounter   component.EncounterState
	Environment component.Environment
	Time        component.TimeEffects

	Score      float64
	Combo      int
	ComboTimer component.Countdown
	GameOver   bool

	nextGroup component.GroupID
	registry  *SparseSet[Collider]
	delivered []Event
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSubscriber registers an event subscriber.
func WithSubscriber(s Subscriber) Option {
	return func(w *World) {
		if s != nil {
			w.subscribers = append(w.subscribers, s)
		}
	}
}

// WithAudio forwards sound cues to an audio collaborator.
func WithAudio(sink AudioSink) Option {
	return func(w *World) {
		if sink != nil {
			w.subscribers = append(w.subscribers, AudioSubscriber(sink))
		}
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(w *World) {
		w.RunID = id
	}
}

// NewWorld validates the configuration and builds an empty world. A nil
// catalog selects the built-in tuning.
func NewWorld(cfg Config, catalog *component.Catalog, opts ...Option) (*World, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = component.DefaultCatalog()
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("ecs: new world: %w", err)
	}
	w := &World{
		cfg:         cfg,
		catalog:     catalog,
		RunID:       uuid.New(),
		log:         log.Default(),
		rng:         NewRNG(cfg.Seed),
		grid:        NewSpatialGrid(cfg.CellSize),
		scheduler:   NewScheduler(),
		timeScale:   1,
		Projectiles: NewProjectilePool(cfg.MaxProjectiles),
		Swarms:      make(map[component.GroupID]*component.SwarmGroup),
		Time:        component.NewTimeEffects(catalog.Time),
		registry:    NewSparseSet[Collider](),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// AddSystem appends a system to the frame order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// AddRealSystem appends a system that ignores the time scale.
func (w *World) AddRealSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.AddReal(s)
}

// Subscribe registers an event subscriber.
func (w *World) Subscribe(s Subscriber) {
	if w == nil || s == nil {
		return
	}
	w.subscribers = append(w.subscribers, s)
}

// Update advances the simulation by dt milliseconds and then delivers the
// frame's events. dt is clamped to [0, MaxDelta]. Now advances by the real
// dt; scaled systems see dt times the time scale.
func (w *World) Update(dt float64, in Input) {
	if w == nil {
		return
	}
	dt = common.Clamp(dt, 0, w.cfg.MaxDelta)
	w.input = in
	w.frame++
	w.now += dt
	w.scheduler.Update(w, dt)
	w.flush()
}

func (w *World) flush() {
	w.delivered = w.events.Drain()
	for _, evt := range w.delivered {
		for _, s := range w.subscribers {
			s.HandleEvent(evt)
		}
	}
}

// Emit queues an event for delivery after the frame.
func (w *World) Emit(evt Event) {
	if w == nil {
		return
	}
	w.events.Push(evt)
}

// Events returns the events queued so far this frame.
func (w *World) Events() []Event {
	if w == nil {
		return nil
	}
	return w.events.Pending()
}

// Delivered returns the events flushed at the end of the last frame.
func (w *World) Delivered() []Event {
	if w == nil {
		return nil
	}
	return w.delivered
}

func (w *World) Config() Config { return w.cfg }
func (w *World) Catalog() *component.Catalog { return w.catalog }
func (w *World) Logger() *log.Logger { return w.log }
func (w *World) RNG() *RNG { return w.rng }
func (w *World) Grid() *SpatialGrid { return w.grid }
func (w *World) Input() Input { return w.input }
func (w *World) Frame() uint64 { return w.frame }

// Now returns the simulated milliseconds since the world was created.
func (w *World) Now() float64 { return w.now }

// MaxTimeScale bounds SetTimeScale.
const MaxTimeScale = 3.0

// TimeScale returns the multiplier applied to the dt of scaled systems.
func (w *World) TimeScale() float64 {
	if w == nil {
		return 1
	}
	return w.timeScale
}

// SetTimeScale sets the scaled-system multiplier, clamped to
// [0, MaxTimeScale].
func (w *World) SetTimeScale(scale float64) {
	if w == nil {
		return
	}
	w.timeScale = common.Clamp(scale, 0, MaxTimeScale)
}

// SetCatalog swaps the tuning used for new spawns. Live entities keep the
// values they were created with.
func (w *World) SetCatalog(c *component.Catalog) error {
	if w == nil {
		return nil
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("ecs: set catalog: %w", err)
	}
	w.catalog = c
	return nil
}

// NewID allocates an entity id.
func (w *World) NewID() Entity {
	return w.ids.create()
}

// NewGroupID allocates a swarm group id.
func (w *World) NewGroupID() component.GroupID {
	w.nextGroup++
	return w.nextGroup
}

// Register makes an actor resolvable by id for weak references.
func (w *World) Register(c Collider) {
	if w == nil || c == nil {
		return
	}
	w.registry.Set(c.AsBody().ID, c)
}

// Unregister drops an id from the lookup table.
func (w *World) Unregister(id Entity) {
	if w == nil {
		return
	}
	w.registry.Remove(id)
}

// Lookup resolves an id to a live actor. Inactive or dead entities resolve to
// nothing.
func (w *World) Lookup(id Entity) (Collider, bool) {
	if w == nil || !id.Valid() {
		return nil, false
	}
	c, ok := w.registry.Get(id)
	if !ok || !c.AsBody().Active {
		return nil, false
	}
	if d, ok := c.(Damageable); ok && !d.AsHealth().IsAlive() {
		return nil, false
	}
	return c, true
}

// Width and Height return the world rectangle.
func (w *World) Width() float64 { return w.cfg.WorldWidth }
func (w *World) Height() float64 { return w.cfg.WorldHeight }

// InBounds reports whether p lies inside the world grown by margin.
func (w *World) InBounds(p cp.Vector, margin float64) bool {
	return p.X >= -margin && p.X <= w.cfg.WorldWidth+margin &&
		p.Y >= -margin && p.Y <= w.cfg.WorldHeight+margin
}

// ClampToWorld keeps a point of the given half extents inside the world.
func (w *World) ClampToWorld(p cp.Vector, hw, hh float64) cp.Vector {
	return cp.Vector{
		X: common.Clamp(p.X, hw, w.cfg.WorldWidth-hw),
		Y: common.Clamp(p.Y, hh, w.cfg.WorldHeight-hh),
	}
}

// ActiveEnemies returns the number of active enemies.
func (w *World) ActiveEnemies() int {
	n := 0
	for _, e := range w.Enemies {
		if e.Active {
			n++
		}
	}
	return n
}

// ActiveHazards returns the number of active hazards.
func (w *World) ActiveHazards() int {
	n := 0
	for _, h := range w.Hazards {
		if h.Active {
			n++
		}
	}
	return n
}

// PlayerTarget returns the live player or nil.
func (w *World) PlayerTarget() *component.Player {
	if w == nil || !w.Player.Alive() {
		return nil
	}
	return w.Player
}

// GridSystem rebuilds the spatial grid from every active entity.
type GridSystem struct{}

func NewGridSystem() *GridSystem {
	return &GridSystem{}
}

func (s *GridSystem) Update(w *World, _ float64) {
	if w == nil {
		return
	}
	g := w.grid
	g.Clear()
	if w.Player.Alive() {
		g.Insert(w.Player)
	}
	for _, e := range w.Enemies {
		if e.Active {
			g.Insert(e)
		}
	}
	if w.Boss != nil && w.Boss.Active {
		g.Insert(w.Boss)
	}
	for _, h := range w.Hazards {
		if h.Active {
			g.Insert(h)
		}
	}
	for _, p := range w.Powerups {
		if p.Active {
			g.Insert(p)
		}
	}
	w.Projectiles.Each(func(p *component.Projectile) {
		g.Insert(p)
	})
}

// CompactSystem removes inactive entities from the collections. It is the
// only place collections shrink.
type CompactSystem struct{}

func NewCompactSystem() *CompactSystem {
	return &CompactSystem{}
}

func (s *CompactSystem) Update(w *World, _ float64) {
	if w == nil {
		return
	}
	w.Enemies = compact(w, w.Enemies)
	w.Hazards = compact(w, w.Hazards)
	w.Powerups = compact(w, w.Powerups)

	for id, g := range w.Swarms {
		members := g.Members[:0]
		for _, m := range g.Members {
			if _, ok := w.Lookup(m); ok {
				members = append(members, m)
			}
		}
		g.Members = members
		if g.Empty() {
			delete(w.Swarms, id)
		}
	}
}

func compact[T Collider](w *World, items []T) []T {
	out := items[:0]
	for _, it := range items {
		if it.AsBody().Active {
			out = append(out, it)
			continue
		}
		w.Unregister(it.AsBody().ID)
	}
	clear(items[len(out):])
	return out
}
