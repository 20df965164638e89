package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// Kernel owns a World and the full set of systems in frame order. It is the
// surface collaborators drive: one Update per frame plus the narrow
// mutators.
type Kernel struct {
	World *ecs.World

	Time        *TimeSystem
	Projectiles *ProjectileSystem
	Swarms      *SwarmSystem
	Enemies     *EnemySystem
	Boss        *BossSystem
	Damage      *DamageResolver
	Player      *PlayerSystem
	Powerups    *PowerupSystem
	Hazards     *HazardSystem
	Status      *StatusSystem
	Collision   *CollisionSystem
	Encounter   *EncounterSystem
}

type kernelOptions struct {
	world     []ecs.Option
	weigher   AbilityWeigher
	startWave int
}

// KernelOption configures a Kernel at construction.
type KernelOption func(*kernelOptions)

// WithWorldOptions forwards options to the underlying World.
func WithWorldOptions(opts ...ecs.Option) KernelOption {
	return func(o *kernelOptions) {
		o.world = append(o.world, opts...)
	}
}

// WithWeigher replaces the boss ability weighting.
func WithWeigher(wt AbilityWeigher) KernelOption {
	return func(o *kernelOptions) {
		o.weigher = wt
	}
}

// WithStartWave sets the first wave the director runs. Zero leaves the
// director idle until StartWave is called.
func WithStartWave(n int) KernelOption {
	return func(o *kernelOptions) {
		if n >= 0 {
			o.startWave = n
		}
	}
}

// NewKernel builds a World, wires every system into it and spawns the
// player. Waves start at 1 unless configured otherwise.
func NewKernel(cfg ecs.Config, catalog *component.Catalog, opts ...KernelOption) (*Kernel, error) {
	o := kernelOptions{startWave: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	w, err := ecs.NewWorld(cfg, catalog, o.world...)
	if err != nil {
		return nil, err
	}

	k := &Kernel{World: w}
	k.Time = NewTimeSystem()
	k.Damage = NewDamageResolver()
	k.Projectiles = NewProjectileSystem()
	k.Swarms = NewSwarmSystem()
	k.Player = NewPlayerSystem(k.Projectiles)
	k.Powerups = NewPowerupSystem(k.Player)
	k.Enemies = NewEnemySystem(k.Projectiles, k.Swarms, k.Damage)
	k.Boss = NewBossSystem(k.Projectiles, k.Enemies, k.Swarms, k.Damage, k.Powerups)
	k.Status = NewStatusSystem(k.Damage)
	k.Hazards = NewHazardSystem(k.Damage, k.Projectiles, k.Status)
	k.Collision = NewCollisionSystem(k.Projectiles, k.Damage, k.Powerups, k.Status)
	k.Encounter = NewEncounterSystem(k.Enemies, k.Boss, k.Hazards)
	if o.weigher != nil {
		k.Boss.SetWeigher(o.weigher)
	}

	k.Damage.proj = k.Projectiles
	k.Damage.enemies = k.Enemies
	k.Damage.swarms = k.Swarms
	k.Damage.boss = k.Boss
	k.Damage.hazards = k.Hazards
	k.Damage.player = k.Player
	k.Damage.drops = k.Powerups
	k.Damage.time = k.Time

	w.AddRealSystem(k.Time)
	w.AddSystem(k.Player)
	w.AddSystem(k.Swarms)
	w.AddSystem(k.Enemies)
	w.AddSystem(k.Boss)
	w.AddSystem(k.Projectiles)
	w.AddSystem(k.Powerups)
	w.AddSystem(k.Hazards)
	w.AddSystem(k.Status)
	w.AddSystem(ecs.NewGridSystem())
	w.AddSystem(k.Collision)
	w.AddSystem(ecs.NewCompactSystem())
	w.AddSystem(k.Encounter)

	k.Player.SpawnPlayer(w)
	if o.startWave > 0 {
		k.Encounter.StartWave(w, o.startWave)
	}
	w.Logger().Printf("kernel: run=%s seed=%d size=%.0fx%.0f", w.RunID, w.Config().Seed, w.Width(), w.Height())
	return k, nil
}

// Update advances one frame of dt milliseconds. The time system steps with
// dt as given; every other system sees it multiplied by the time scale.
func (k *Kernel) Update(dt float64, in ecs.Input) {
	if k == nil {
		return
	}
	k.World.Update(dt, in)
}

// Snapshot returns a read-only copy of the current frame.
func (k *Kernel) Snapshot() *ecs.Snapshot {
	if k == nil {
		return nil
	}
	return k.World.Snapshot()
}

// Heal restores player health and returns the amount restored.
func (k *Kernel) Heal(amount float64) float64 {
	return k.Player.Heal(k.World, amount)
}

// UpgradeWeapon raises the player weapon level by one.
func (k *Kernel) UpgradeWeapon() bool {
	return k.Player.UpgradeWeapon(k.World)
}

// EquipWeapon puts an unlocked weapon in a slot.
func (k *Kernel) EquipWeapon(kind component.WeaponKind, slot component.WeaponSlot) bool {
	return k.Player.EquipWeapon(k.World, kind, slot)
}

// UnlockWeapon makes a weapon equippable.
func (k *Kernel) UnlockWeapon(kind component.WeaponKind) bool {
	return k.Player.UnlockWeapon(k.World, kind)
}

// UpgradeArsenalWeapon raises one weapon's level.
func (k *Kernel) UpgradeArsenalWeapon(kind component.WeaponKind) bool {
	return k.Player.UpgradeArsenalWeapon(k.World, kind)
}

// ActivateLaser starts the player's laser burst.
func (k *Kernel) ActivateLaser() bool {
	return k.Player.ActivateLaser(k.World)
}

// ActivateTimeEffect starts a time effect for ms milliseconds, or its tuned
// duration when ms is not positive.
func (k *Kernel) ActivateTimeEffect(kind component.TimeEffectKind, ms float64) bool {
	return k.Time.Activate(k.World, kind, ms)
}

// DeactivateTimeEffects stops every running time effect.
func (k *Kernel) DeactivateTimeEffects() {
	k.Time.DeactivateAll(k.World)
}

// TimeScale returns the current world time scale.
func (k *Kernel) TimeScale() float64 {
	return k.World.TimeScale()
}

// SpawnPowerup drops a collectible at (x, y).
func (k *Kernel) SpawnPowerup(x, y float64, kind string) *component.Powerup {
	return k.Powerups.SpawnPowerup(k.World, x, y, kind)
}

func (k *Kernel) SetWeigher(wt AbilityWeigher) {
	k.Boss.SetWeigher(wt)
}

func (k *Kernel) StartWave(n int) {
	k.Encounter.StartWave(k.World, n)
}

func (k *Kernel) StartBossEncounter(kind string) *component.Boss {
	return k.Encounter.StartBossEncounter(k.World, kind)
}

func (k *Kernel) ActivateEvent(name string, ms float64) bool {
	return k.Hazards.ActivateEvent(k.World, name, ms)
}

func (k *Kernel) DeactivateEvent(name string) bool {
	return k.Hazards.DeactivateEvent(k.World, name)
}

// SetCatalog swaps tuning for future spawns.
func (k *Kernel) SetCatalog(c *component.Catalog) error {
	return k.World.SetCatalog(c)
}
