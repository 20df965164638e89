package ecs

// EventType identifies kernel events.
type EventType string

const (
	EventHit                EventType = "hit"
	EventEnemyKilled        EventType = "enemy_killed"
	EventEnemySpawned       EventType = "enemy_spawned"
	EventEnemySplit         EventType = "enemy_split"
	EventExplosion          EventType = "explosion"
	EventPlayerDamaged      EventType = "player_damaged"
	EventPlayerDied         EventType = "player_died"
	EventPlayerRespawned    EventType = "player_respawned"
	EventGameOver           EventType = "game_over"
	EventComboIncremented   EventType = "combo_incremented"
	EventBossSpawned        EventType = "boss_spawned"
	EventBossPhaseChanged   EventType = "boss_phase_changed"
	EventBossDefeated       EventType = "boss_defeated"
	EventAbilityUsed        EventType = "ability_used"
	EventWeakPointHit       EventType = "weak_point_hit"
	EventWeakPointDestroyed EventType = "weak_point_destroyed"
	EventBossStunned        EventType = "boss_stunned"
	EventReward             EventType = "reward"
	EventPowerupSpawned     EventType = "powerup_spawned"
	EventPowerupCollected   EventType = "powerup_collected"
	EventHazardSpawned      EventType = "hazard_spawned"
	EventHazardDestroyed    EventType = "hazard_destroyed"
	EventEnvironmental      EventType = "environmental_event"
	EventWaveStarted        EventType = "wave_started"
	EventWaveCompleted      EventType = "wave_completed"
	EventTimeEffectStarted  EventType = "time_effect_started"
	EventTimeEffectEnded    EventType = "time_effect_ended"
	EventWeaponFired        EventType = "weapon_fired"
	EventWeaponOverheated   EventType = "weapon_overheated"
	EventWeaponCooled       EventType = "weapon_cooled"
	EventWeaponUnlocked     EventType = "weapon_unlocked"
	EventWeaponEquipped     EventType = "weapon_equipped"
	EventWeaponUpgraded     EventType = "weapon_upgraded"
)

// Event is a fire-and-forget notification produced during a frame and
// delivered to subscribers after the frame completes.
type Event struct {
	Type   EventType
	Entity Entity
	Source Entity
	// Kind is the entity, ability, powerup or event name involved.
	Kind   string
	X      float64
	Y      float64
	Amount float64
	Value  int
}

// Subscriber consumes kernel events. Implementations must not mutate the
// simulation except through the narrow mutators the kernel exposes.
type Subscriber interface {
	HandleEvent(evt Event)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(evt Event)

func (f SubscriberFunc) HandleEvent(evt Event) {
	f(evt)
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Pending returns the queued events without clearing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
