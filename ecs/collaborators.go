package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs/component"
)

// Collider is anything with a body the spatial grid can hold.
type Collider interface {
	AsBody() *component.Body
}

// Damageable is a collider with health.
type Damageable interface {
	Collider
	AsHealth() *component.Health
}

// Input is the per-frame snapshot supplied by the input collaborator.
type Input struct {
	// Move is the normalized movement vector.
	Move    cp.Vector
	Shoot   bool
	Shield  bool
	Ability bool
	// Secondary and Special fire the weapons in those slots.
	Secondary  bool
	Special    bool
	BulletTime bool
}

// AudioSink receives fire-and-forget sound cues with a position for
// spatialization. The kernel never waits on it.
type AudioSink interface {
	OnHit(x, y, amount float64)
	OnDeath(x, y float64, kind string)
	OnAbilityUsed(x, y float64, ability string)
}

// AudioSubscriber forwards the events an audio collaborator cares about.
func AudioSubscriber(sink AudioSink) Subscriber {
	return SubscriberFunc(func(evt Event) {
		if sink == nil {
			return
		}
		switch evt.Type {
		case EventHit, EventPlayerDamaged, EventWeakPointHit:
			sink.OnHit(evt.X, evt.Y, evt.Amount)
		case EventEnemyKilled, EventBossDefeated, EventPlayerDied, EventHazardDestroyed, EventExplosion:
			sink.OnDeath(evt.X, evt.Y, evt.Kind)
		case EventAbilityUsed:
			sink.OnAbilityUsed(evt.X, evt.Y, evt.Kind)
		}
	})
}
