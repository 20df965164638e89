package ecs

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EntityView is the read-only render state of one entity.
type EntityView struct {
	ID       Entity  `msgpack:"id"`
	Kind     string  `msgpack:"kind"`
	Layer    uint32  `msgpack:"layer"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"rot"`
	Alpha    float64 `msgpack:"alpha"`
	Scale    float64 `msgpack:"scale"`
	Radius   float64 `msgpack:"r"`
	Width    float64 `msgpack:"w,omitempty"`
	Height   float64 `msgpack:"h,omitempty"`
	Health   float64 `msgpack:"hp"`
	Flash    bool    `msgpack:"flash,omitempty"`
}

type PlayerView struct {
	EntityView   `msgpack:",inline"`
	Lives        int         `msgpack:"lives"`
	Current      float64     `msgpack:"current"`
	Max          float64     `msgpack:"max"`
	WeaponLevel  int         `msgpack:"weapon"`
	ShieldUp     bool        `msgpack:"shield_up"`
	ShieldEnergy float64     `msgpack:"shield"`
	Invulnerable bool        `msgpack:"invulnerable"`
	Alive        bool        `msgpack:"alive"`
	Arsenal      ArsenalView `msgpack:"arsenal"`
}

type WeaponView struct {
	Kind     string  `msgpack:"kind"`
	Level    int     `msgpack:"level"`
	Unlocked bool    `msgpack:"unlocked"`
	Ammo     float64 `msgpack:"ammo,omitempty"`
	MaxAmmo  float64 `msgpack:"max_ammo,omitempty"`
}

// ArsenalView lists the weapons in unlock order.
type ArsenalView struct {
	Slots      []string     `msgpack:"slots"`
	Heat       float64      `msgpack:"heat"`
	Overheated bool         `msgpack:"overheated"`
	Charge     float64      `msgpack:"charge,omitempty"`
	Weapons    []WeaponView `msgpack:"weapons"`
}

type TimeView struct {
	Scale  float64  `msgpack:"scale"`
	Energy float64  `msgpack:"energy"`
	Active []string `msgpack:"active,omitempty"`
}

type WeakPointView struct {
	X          float64 `msgpack:"x"`
	Y          float64 `msgpack:"y"`
	Size       float64 `msgpack:"size"`
	Health     float64 `msgpack:"hp"`
	Active     bool    `msgpack:"active"`
	Vulnerable bool    `msgpack:"vulnerable"`
}

type BossView struct {
	EntityView `msgpack:",inline"`
	Type       string          `msgpack:"type"`
	Phase      int             `msgpack:"phase"`
	Phases     int             `msgpack:"phases"`
	State      string          `msgpack:"state"`
	Shield     float64         `msgpack:"shield"`
	Darkness   float64         `msgpack:"darkness"`
	WeakPoints []WeakPointView `msgpack:"weak_points"`
	Abilities  []string        `msgpack:"abilities"`
}

type WaveView struct {
	Wave      int     `msgpack:"wave"`
	Remaining int     `msgpack:"remaining"`
	Queued    int     `msgpack:"queued"`
	Active    bool    `msgpack:"active"`
	BossWave  bool    `msgpack:"boss_wave"`
	Progress  float64 `msgpack:"progress"`
	NextWave  float64 `msgpack:"next_wave_ms"`
}

// Snapshot is a deep copy of everything a renderer may read for one frame.
type Snapshot struct {
	RunID       string       `msgpack:"run_id"`
	Frame       uint64       `msgpack:"frame"`
	TimeMs      float64      `msgpack:"time"`
	Score       float64      `msgpack:"score"`
	Combo       int          `msgpack:"combo"`
	GameOver    bool         `msgpack:"game_over"`
	Events      []string     `msgpack:"events,omitempty"`
	Player      PlayerView   `msgpack:"player"`
	Enemies     []EntityView `msgpack:"enemies"`
	Projectiles []EntityView `msgpack:"projectiles"`
	Hazards     []EntityView `msgpack:"hazards"`
	Powerups    []EntityView `msgpack:"powerups"`
	Boss        *BossView    `msgpack:"boss,omitempty"`
	Wave        WaveView     `msgpack:"wave"`
	Environment []string     `msgpack:"environment,omitempty"`
	Time        TimeView     `msgpack:"time_fx"`
}

// EncodeSnapshot serializes a snapshot for an out-of-process renderer.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("ecs: encode snapshot: nil snapshot")
	}
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("ecs: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("ecs: decode snapshot: %w", err)
	}
	return &s, nil
}
