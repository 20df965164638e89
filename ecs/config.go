package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/shmup/ecs/component"
)

var ErrInvalidConfig = errors.New("ecs: invalid config")

// Config carries the world constants the kernel is constructed with.
type Config struct {
	WorldWidth     float64          `yaml:"world_width"`
	WorldHeight    float64          `yaml:"world_height"`
	CellSize       float64          `yaml:"grid_cell_size"`
	Layers         component.Layers `yaml:"layers"`
	MaxProjectiles int              `yaml:"max_projectiles"`
	MaxEnemies     int              `yaml:"max_enemies"`
	MaxHazards     int              `yaml:"max_hazards"`
	BoundsMargin   float64          `yaml:"bounds_margin"`
	MaxDelta       float64          `yaml:"max_delta"`
	Seed           uint64           `yaml:"seed"`
}

// DefaultConfig returns a 1200x800 world with a 64 unit grid.
func DefaultConfig() Config {
	return Config{
		WorldWidth:     1200,
		WorldHeight:    800,
		CellSize:       64,
		Layers:         component.DefaultLayers(),
		MaxProjectiles: 200,
		MaxEnemies:     50,
		MaxHazards:     15,
		BoundsMargin:   50,
		MaxDelta:       100,
		Seed:           1,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.WorldWidth <= 0:
		return fmt.Errorf("%w: world_width %v", ErrInvalidConfig, c.WorldWidth)
	case c.WorldHeight <= 0:
		return fmt.Errorf("%w: world_height %v", ErrInvalidConfig, c.WorldHeight)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: grid_cell_size %v", ErrInvalidConfig, c.CellSize)
	case c.MaxProjectiles <= 0:
		return fmt.Errorf("%w: max_projectiles %d", ErrInvalidConfig, c.MaxProjectiles)
	case c.MaxEnemies <= 0:
		return fmt.Errorf("%w: max_enemies %d", ErrInvalidConfig, c.MaxEnemies)
	case c.Layers.Player == 0 || c.Layers.Enemy == 0 || c.Layers.PlayerBullet == 0 || c.Layers.EnemyBullet == 0:
		return fmt.Errorf("%w: collision layers must be non-zero", ErrInvalidConfig)
	}
	return nil
}

// withDefaults fills zero optional fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Layers == (component.Layers{}) {
		c.Layers = d.Layers
	}
	if c.MaxHazards <= 0 {
		c.MaxHazards = d.MaxHazards
	}
	if c.BoundsMargin <= 0 {
		c.BoundsMargin = d.BoundsMargin
	}
	if c.MaxDelta <= 0 {
		c.MaxDelta = d.MaxDelta
	}
	return c
}
