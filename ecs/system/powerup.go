package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	powerupRadius   = 12.0
	powerupDrift    = 1.0
	powerupSpin     = 0.05
	powerupLifeMs   = 10000.0
	powerupScore    = 50.0
	experienceValue = 10.0
)

// PowerupSystem drops collectibles into the field, drifts them down and
// applies their effect when the player picks one up.
type PowerupSystem struct {
	player *PlayerSystem
}

func NewPowerupSystem(player *PlayerSystem) *PowerupSystem {
	return &PowerupSystem{player: player}
}

// SpawnPowerup drops a collectible of any kind at (x, y). Kinds without a
// built-in effect are collected as events only.
func (s *PowerupSystem) SpawnPowerup(w *ecs.World, x, y float64, kind string) *component.Powerup {
	if w == nil || kind == "" {
		return nil
	}
	pu := &component.Powerup{
		Body: component.Body{
			ID:     w.NewID(),
			Pos:    cp.Vector{X: x, Y: y},
			Vel:    cp.Vector{Y: powerupDrift},
			Shape:  component.Circle(powerupRadius),
			Layer:  w.Config().Layers.Powerup,
			Active: true,
			Alpha:  1,
			Scale:  1,
		},
		Kind: kind,
	}
	if kind == component.PowerupExperience {
		pu.Value = experienceValue
	}
	pu.Life.Start(powerupLifeMs)
	w.Powerups = append(w.Powerups, pu)
	w.Register(pu)
	w.Emit(ecs.Event{Type: ecs.EventPowerupSpawned, Entity: pu.ID, Kind: kind, X: x, Y: y})
	return pu
}

func (s *PowerupSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	margin := w.Config().BoundsMargin
	for _, pu := range w.Powerups {
		if !pu.Active {
			continue
		}
		pu.Integrate(dt)
		pu.Rotation += powerupSpin * common.Frames(dt)
		if pu.Life.Tick(dt) || pu.Pos.Y > w.Height()+margin {
			pu.Active = false
		}
	}
}

// Collect applies a powerup to the player and removes it from play.
func (s *PowerupSystem) Collect(w *ecs.World, p *component.Player, pu *component.Powerup) {
	if w == nil || !p.Alive() || pu == nil || !pu.Active {
		return
	}
	pu.Active = false
	t := w.Catalog().Player
	switch pu.Kind {
	case component.PowerupHealth:
		p.Health.Heal(t.PowerupHeal)
	case component.PowerupShield:
		p.ShieldEnergy = p.MaxShieldEnergy
	case component.PowerupRapidFire:
		p.RapidFire.Start(t.RapidFireMs)
	case component.PowerupMultiShot:
		if s.player != nil {
			s.player.UpgradeWeapon(w)
		}
	case component.PowerupLegendaryWeapon:
		if s.player != nil {
			s.player.UnlockNextWeapon(w)
		}
	}
	w.Score += powerupScore
	w.Emit(ecs.Event{Type: ecs.EventPowerupCollected, Entity: pu.ID, Source: p.ID, Kind: pu.Kind, X: pu.Pos.X, Y: pu.Pos.Y, Amount: pu.Value})
}
