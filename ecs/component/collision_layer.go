package component

// Layer is a collision category bitmask.
type Layer uint32

const (
	LayerPlayer       Layer = 1
	LayerEnemy        Layer = 2
	LayerPlayerBullet Layer = 4
	LayerEnemyBullet  Layer = 8
	LayerPowerup      Layer = 16
	LayerParticle     Layer = 32
)

// LayerAll matches every category.
const LayerAll Layer = ^Layer(0)

// Layers carries the bitmask values a world was configured with.
type Layers struct {
	Player       Layer `yaml:"player"`
	Enemy        Layer `yaml:"enemy"`
	PlayerBullet Layer `yaml:"player_bullet"`
	EnemyBullet  Layer `yaml:"enemy_bullet"`
	Powerup      Layer `yaml:"powerup"`
	Particle     Layer `yaml:"particle"`
}

// DefaultLayers returns the stock bitmask assignment.
func DefaultLayers() Layers {
	return Layers{
		Player:       LayerPlayer,
		Enemy:        LayerEnemy,
		PlayerBullet: LayerPlayerBullet,
		EnemyBullet:  LayerEnemyBullet,
		Powerup:      LayerPowerup,
		Particle:     LayerParticle,
	}
}

// Matches reports whether l shares any bit with mask. A zero mask is no
// filter and matches every layer.
func (l Layer) Matches(mask Layer) bool {
	return mask == 0 || l&mask != 0
}
